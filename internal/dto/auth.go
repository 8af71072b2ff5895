package dto

import (
	"time"

	"COURSEHUB_BACK-END/internal/models"
)

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email,max=254" sanitize:"lower"`
	Password       string  `json:"password" validate:"required" sanitize:"keep"`
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	EducationLevel *string `json:"educationLevel,omitempty" validate:"omitempty,max=64"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" sanitize:"lower"`
	Password string `json:"password" validate:"required" sanitize:"keep"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token,omitempty"`
}

// UserResponse represents user data in API responses. It never carries the password.
type UserResponse struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Phone          *string `json:"phone"`
	EducationLevel *string `json:"educationLevel"`
	CreatedAt      string  `json:"createdAt"`
}

// NewUserResponse converts a stored user into its public shape
func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		EducationLevel: u.EducationLevel,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}
