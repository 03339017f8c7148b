package dto

import "github.com/Rawuh-in/console/internal/domain"

// CreateEventRequest represents request to create a new event
type CreateEventRequest struct {
	EventName   string   `json:"event_name" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Hotels      []string `json:"hotels" binding:"omitempty"`
	Rooms       []string `json:"rooms" binding:"omitempty"`
}

// UpdateEventRequest represents request to update an event. The
// backend overwrites the full record, so every field is sent.
type UpdateEventRequest struct {
	EventName   string   `json:"event_name" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Hotels      []string `json:"hotels" binding:"omitempty"`
	Rooms       []string `json:"rooms" binding:"omitempty"`
}

// EventResponse represents event data in response
type EventResponse struct {
	ID          int64    `json:"id"`
	EventName   string   `json:"event_name"`
	Description string   `json:"description,omitempty"`
	Hotels      []string `json:"hotels,omitempty"`
	Rooms       []string `json:"rooms,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// ListQuery represents the pagination and filter parameters accepted
// by every list endpoint
type ListQuery struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Sort  string `form:"sort" binding:"omitempty,max=100"`
	Dir   string `form:"dir" binding:"omitempty,oneof=asc desc"`
	Query string `form:"query" binding:"omitempty,max=255"`
}

// SetDefaults applies default pagination values
func (q *ListQuery) SetDefaults() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
}

// PaginationResponse represents pagination metadata in list responses
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationResponse converts wire pagination to the response shape
func NewPaginationResponse(p *domain.Pagination) *PaginationResponse {
	if p == nil {
		return nil
	}
	return &PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.TotalRows,
		TotalPages: p.TotalPage,
	}
}

// ListEventsResponse represents a page of events
type ListEventsResponse struct {
	Events     []EventResponse     `json:"events"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// NewEventResponse converts a domain event to the response shape
func NewEventResponse(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		EventName:   e.EventName,
		Description: e.Description,
		Hotels:      e.Hotels(),
		Rooms:       e.Rooms(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
