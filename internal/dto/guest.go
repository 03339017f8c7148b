package dto

import (
	"github.com/Rawuh-in/console/internal/domain"
)

// CreateGuestRequest represents request to add a guest to an event
type CreateGuestRequest struct {
	GuestName   string `json:"guest_name" binding:"required,min=1,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=50"`
	Hotel       string `json:"hotel" binding:"omitempty,max=255"`
	Room        string `json:"room" binding:"omitempty,max=255"`
}

// UpdateGuestRequest represents request to update a guest's contact
// fields. Assignment and check-in state are changed through their own
// endpoints.
type UpdateGuestRequest struct {
	GuestName   string `json:"guest_name" binding:"required,min=1,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=50"`
}

// AssignGuestRequest represents a hotel/room assignment change. Nil
// fields are left untouched; an empty string clears the assignment.
type AssignGuestRequest struct {
	Hotel *string `json:"hotel" binding:"omitempty,max=255"`
	Room  *string `json:"room" binding:"omitempty,max=255"`
}

// Validate checks that the request changes at least one field
func (r *AssignGuestRequest) Validate() (bool, string) {
	if r.Hotel == nil && r.Room == nil {
		return false, "At least one of hotel or room must be provided"
	}
	return true, ""
}

// GuestResponse represents guest data in response. Status is derived,
// never stored.
type GuestResponse struct {
	ID           int64                `json:"id"`
	EventID      int64                `json:"event_id"`
	GuestName    string               `json:"guest_name"`
	Email        string               `json:"email,omitempty"`
	PhoneNumber  string               `json:"phone_number,omitempty"`
	Hotel        string               `json:"hotel,omitempty"`
	Room         string               `json:"room,omitempty"`
	Status       domain.CheckInStatus `json:"status"`
	CheckedInAt  string               `json:"checked_in_at,omitempty"`
	CheckedOutAt string               `json:"checked_out_at,omitempty"`
	CreatedAt    string               `json:"created_at,omitempty"`
	UpdatedAt    string               `json:"updated_at,omitempty"`
}

// ListGuestsResponse represents a page of guests for one event
type ListGuestsResponse struct {
	Guests     []GuestResponse     `json:"guests"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// AssignmentTotals counts guests per derived status
type AssignmentTotals struct {
	NotAssigned int `json:"not_assigned"`
	Assigned    int `json:"assigned"`
	CheckedIn   int `json:"checked_in"`
	CheckedOut  int `json:"checked_out"`
}

// AssignmentBoardResponse represents the assignment overview of one
// event: its configured hotels and rooms, every guest with derived
// status, and totals per status.
type AssignmentBoardResponse struct {
	EventID   int64            `json:"event_id"`
	EventName string           `json:"event_name"`
	Hotels    []string         `json:"hotels,omitempty"`
	Rooms     []string         `json:"rooms,omitempty"`
	Guests    []GuestResponse  `json:"guests"`
	Totals    AssignmentTotals `json:"totals"`
}

// NewGuestResponse converts a domain guest to the response shape
func NewGuestResponse(g *domain.Guest) *GuestResponse {
	data := g.ParsedCustomData()
	return &GuestResponse{
		ID:           g.ID,
		EventID:      g.EventID,
		GuestName:    g.GuestName,
		Email:        g.Email,
		PhoneNumber:  g.PhoneNumber,
		Hotel:        data.GetString(domain.KeyHotel),
		Room:         data.GetString(domain.KeyRoom),
		Status:       domain.StatusOf(data),
		CheckedInAt:  data.GetString(domain.KeyCheckedInAt),
		CheckedOutAt: data.GetString(domain.KeyCheckedOutAt),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
