package dto

import "github.com/Rawuh-in/console/internal/domain"

// CreateUserRequest represents request to create a staff account
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=2,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	Role        string `json:"role" binding:"required,oneof=SYSTEM_ADMIN PROJECT_USER"`
	DisplayName string `json:"display_name" binding:"omitempty,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UpdateUserRequest represents request to update a staff account.
// Password is optional; an empty value keeps the current one.
type UpdateUserRequest struct {
	Username    string `json:"username" binding:"required,min=2,max=100"`
	Password    string `json:"password" binding:"omitempty,min=8,max=128"`
	Role        string `json:"role" binding:"required,oneof=SYSTEM_ADMIN PROJECT_USER"`
	DisplayName string `json:"display_name" binding:"omitempty,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UserResponse represents staff-account data in response
type UserResponse struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"display_name,omitempty"`
	Email       string      `json:"email,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

// ListUsersResponse represents a page of staff accounts
type ListUsersResponse struct {
	Users      []UserResponse      `json:"users"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// NewUserResponse converts a domain user to the response shape
func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
