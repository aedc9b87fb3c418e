// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/newsdesk/newsdesk/internal/model"
)

// SignUpRequest represents the request body for registering an identity.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// SignInRequest represents the request body for signing in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents an identity in API responses.
// The password hash never appears here.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse represents a successful sign-up or sign-in.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Active:      user.Active,
		CreatedAt:   user.CreatedAt,
	}
}

// ToAuthResponse converts a User model and token to AuthResponse.
func ToAuthResponse(user *model.User, token string) *AuthResponse {
	return &AuthResponse{
		User:  ToUserResponse(user),
		Token: token,
	}
}
