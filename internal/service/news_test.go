package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/newsdesk/newsdesk/internal/repository"
)

// syncViews applies view increments synchronously for deterministic tests.
type syncViews struct {
	store NewsStore
}

func (v *syncViews) Record(newsID string) {
	_ = v.store.IncrementNewsViews(context.Background(), newsID, 1)
}

func newNewsService() (*NewsService, *repository.MemoryStore) {
	store := repository.NewMemory()
	return NewNewsService(store, &syncViews{store: store}, nil), store
}

func TestNewsService_Create(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()
	ctx := context.Background()

	news, err := svc.Create(ctx, CreateNewsInput{
		Title:   "Hello",
		Body:    "World",
		OwnerID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if news.ID == "" {
		t.Error("expected a generated article ID")
	}
	if news.OwnerID != "user-1" {
		t.Errorf("unexpected owner: %s", news.OwnerID)
	}
	if news.ViewCount != 0 {
		t.Errorf("new articles start at zero views, got %d", news.ViewCount)
	}
	if news.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNewsService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateNewsInput
	}{
		{"empty title", CreateNewsInput{Title: "", Body: "b", OwnerID: "u"}},
		{"blank title", CreateNewsInput{Title: "   ", Body: "b", OwnerID: "u"}},
		{"empty body", CreateNewsInput{Title: "t", Body: "", OwnerID: "u"}},
		{"long title", CreateNewsInput{Title: strings.Repeat("x", 300), Body: "b", OwnerID: "u"}},
		{"no owner", CreateNewsInput{Title: "t", Body: "b", OwnerID: ""}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := svc.Create(ctx, tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestNewsService_Get_IncrementsViews(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNewsInput{Title: "t", Body: "b", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Get(ctx, created.ID); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	// Three prior reads recorded; the fourth read's own view lands after
	// the article is loaded.
	if got.ViewCount != 3 {
		t.Errorf("expected 3 recorded views, got %d", got.ViewCount)
	}
}

func TestNewsService_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNewsNotFound) {
		t.Errorf("expected ErrNewsNotFound, got %v", err)
	}
}

func TestNewsService_Update_Owner(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNewsInput{Title: "t", Body: "b", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "new title"
	updated, err := svc.Update(ctx, UpdateNewsInput{
		ID:          created.ID,
		RequesterID: "u1",
		Title:       &title,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "new title" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}
	if updated.Body != "b" {
		t.Errorf("unset fields must be unchanged, got body %s", updated.Body)
	}
	if updated.OwnerID != "u1" {
		t.Errorf("owner must never change, got %s", updated.OwnerID)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v before %v", updated.UpdatedAt, created.UpdatedAt)
	}
}

// A non-owner must see the same outcome as a missing article.
func TestNewsService_Update_NonOwnerGetsNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNewsInput{Title: "t", Body: "b", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "hijacked"
	_, denied := svc.Update(ctx, UpdateNewsInput{ID: created.ID, RequesterID: "u2", Title: &title})
	_, missing := svc.Update(ctx, UpdateNewsInput{ID: "missing", RequesterID: "u2", Title: &title})

	if !errors.Is(denied, ErrNewsNotFound) {
		t.Errorf("non-owner update: expected ErrNewsNotFound, got %v", denied)
	}
	if !errors.Is(missing, ErrNewsNotFound) {
		t.Errorf("missing article update: expected ErrNewsNotFound, got %v", missing)
	}
	if denied.Error() != missing.Error() {
		t.Errorf("denial and missing must be indistinguishable: %q vs %q", denied, missing)
	}

	// The article is untouched.
	got, _ := svc.Get(ctx, created.ID)
	if got.Title != "t" {
		t.Errorf("denied update must not mutate, got title %s", got.Title)
	}
}

func TestNewsService_Delete(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNewsInput{Title: "t", Body: "b", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "u2"); !errors.Is(err, ErrNewsNotFound) {
		t.Errorf("non-owner delete: expected ErrNewsNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "u1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNewsNotFound) {
		t.Errorf("expected ErrNewsNotFound after delete, got %v", err)
	}
}

func TestNewsService_ListByOwner(t *testing.T) {
	t.Parallel()

	svc, _ := newNewsService()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(ctx, CreateNewsInput{Title: "a", Body: "b", OwnerID: "u1"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := svc.Create(ctx, CreateNewsInput{Title: "a", Body: "b", OwnerID: "u2"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 articles, got %d", len(all))
	}

	mine, err := svc.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 articles for u1, got %d", len(mine))
	}
}
