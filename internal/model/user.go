// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered identity.
// PasswordHash is write-only from the service's perspective: only the
// password hasher produces and consumes it, and it is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext carries the authenticated identity through a request.
type AuthContext struct {
	UserID string
	Email  string
}
