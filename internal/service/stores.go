// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/newsdesk/newsdesk/internal/model"
)

// UserStore is the credential store consumed by the identity service.
// Implementations must enforce email uniqueness at the storage level and
// report a duplicate insert with repository.ErrEmailExists; the service's
// pre-check is an early-fail optimization only.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// NewsStore persists owned articles.
type NewsStore interface {
	CreateNews(ctx context.Context, news *model.News) error
	GetNewsByID(ctx context.Context, id string) (*model.News, error)
	ListNews(ctx context.Context) ([]*model.News, error)
	ListNewsByOwner(ctx context.Context, ownerID string) ([]*model.News, error)
	UpdateNews(ctx context.Context, news *model.News) error
	DeleteNews(ctx context.Context, id string) error
	IncrementNewsViews(ctx context.Context, id string, delta int64) error
}
