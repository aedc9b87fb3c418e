package dto

import (
	"time"

	"github.com/newsdesk/newsdesk/internal/model"
)

// CreateNewsRequest represents the request body for publishing an article.
type CreateNewsRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UpdateNewsRequest represents the request body for editing an article.
// Absent fields are left unchanged.
type UpdateNewsRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// NewsResponse represents an article in API responses.
type NewsResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	OwnerID   string    `json:"owner_id"`
	ViewCount int64     `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewsListResponse represents a list of articles.
type NewsListResponse struct {
	Data []NewsResponse `json:"data"`
}

// ToNewsResponse converts a News model to NewsResponse DTO.
func ToNewsResponse(news *model.News) *NewsResponse {
	return &NewsResponse{
		ID:        news.ID,
		Title:     news.Title,
		Body:      news.Body,
		OwnerID:   news.OwnerID,
		ViewCount: news.ViewCount,
		CreatedAt: news.CreatedAt,
		UpdatedAt: news.UpdatedAt,
	}
}

// ToNewsListResponse converts a slice of News models to NewsListResponse.
func ToNewsListResponse(items []*model.News) *NewsListResponse {
	responses := make([]NewsResponse, len(items))
	for i, item := range items {
		responses[i] = *ToNewsResponse(item)
	}
	return &NewsListResponse{Data: responses}
}
