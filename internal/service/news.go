package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

// News service errors.
var (
	// ErrNewsNotFound covers both a genuinely missing article and an
	// ownership denial; the two must be indistinguishable to callers.
	ErrNewsNotFound = errors.New("news not found")
)

const (
	maxTitleLength = 200
	maxBodyLength  = 50000
)

// ViewRecorder accepts view-count increments off the read path.
type ViewRecorder interface {
	Record(newsID string)
}

// NewsService handles article business logic.
type NewsService struct {
	store   NewsStore
	views   ViewRecorder
	metrics metrics.Recorder
}

// NewNewsService creates a NewsService. views may be nil, in which case
// reads do not record view counts.
func NewNewsService(store NewsStore, views ViewRecorder, recorder metrics.Recorder) *NewsService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &NewsService{
		store:   store,
		views:   views,
		metrics: recorder,
	}
}

// CreateNewsInput defines input for creating an article.
type CreateNewsInput struct {
	Title   string
	Body    string
	OwnerID string
}

// Create creates a new article owned by the authenticated user.
func (s *NewsService) Create(ctx context.Context, input CreateNewsInput) (*model.News, error) {
	if err := validateNews(input.Title, input.Body); err != nil {
		return nil, err
	}
	if input.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner", ErrInvalidInput)
	}

	now := time.Now().UTC()
	news := &model.News{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Title:     input.Title,
		Body:      input.Body,
		OwnerID:   input.OwnerID,
		ViewCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateNews(ctx, news); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}

	s.metrics.IncNewsCreated()

	return news, nil
}

// Get retrieves a single article and records a view. Reads are public.
// The counter is applied asynchronously; a lost increment under races or
// shutdown is accepted.
func (s *NewsService) Get(ctx context.Context, id string) (*model.News, error) {
	news, err := s.store.GetNewsByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	if s.views != nil {
		s.views.Record(news.ID)
	}

	return news, nil
}

// List retrieves all articles, newest first. Reads are public.
func (s *NewsService) List(ctx context.Context) ([]*model.News, error) {
	return s.store.ListNews(ctx)
}

// ListByOwner retrieves the given user's articles, newest first.
func (s *NewsService) ListByOwner(ctx context.Context, ownerID string) ([]*model.News, error) {
	return s.store.ListNewsByOwner(ctx, ownerID)
}

// UpdateNewsInput defines input for updating an article. Nil fields are
// left unchanged.
type UpdateNewsInput struct {
	ID          string
	RequesterID string
	Title       *string
	Body        *string
}

// Update applies a partial update to an article the requester owns.
// A missing article and an ownership mismatch both fail with
// ErrNewsNotFound.
func (s *NewsService) Update(ctx context.Context, input UpdateNewsInput) (*model.News, error) {
	news, err := s.store.GetNewsByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	if !AuthorizeMutation(news.OwnerID, input.RequesterID) {
		return nil, ErrNewsNotFound
	}

	if input.Title != nil {
		news.Title = *input.Title
	}
	if input.Body != nil {
		news.Body = *input.Body
	}
	if err := validateNews(news.Title, news.Body); err != nil {
		return nil, err
	}
	news.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateNews(ctx, news); err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	s.metrics.IncNewsUpdated()

	return news, nil
}

// Delete removes an article the requester owns. A missing article and an
// ownership mismatch both fail with ErrNewsNotFound.
func (s *NewsService) Delete(ctx context.Context, id, requesterID string) error {
	news, err := s.store.GetNewsByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	if !AuthorizeMutation(news.OwnerID, requesterID) {
		return ErrNewsNotFound
	}

	if err := s.store.DeleteNews(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	s.metrics.IncNewsDeleted()

	return nil
}

func validateNews(title, body string) error {
	if strings.TrimSpace(title) == "" || len(title) > maxTitleLength {
		return fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" || len(body) > maxBodyLength {
		return fmt.Errorf("%w: body", ErrInvalidInput)
	}
	return nil
}
