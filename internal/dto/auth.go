package dto

// LoginRequest represents a sign-in request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the authenticated session. The bearer token
// stays server-side; only the profile is returned.
type LoginResponse struct {
	User *UserResponse `json:"user,omitempty"`
}
