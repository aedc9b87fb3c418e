// Package model defines domain entities for the application.
package model

import "time"

// News represents a short article owned by a single user.
// OwnerID is set once at creation and never reassigned; only the owner
// may mutate or delete the article, while anyone may read it.
type News struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	OwnerID   string    `json:"owner_id"`
	ViewCount int64     `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
