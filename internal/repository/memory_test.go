package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/newsdesk/newsdesk/internal/model"
)

func newTestUser(id, email string) *model.User {
	return &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$salt$hash",
		DisplayName:  "Test User",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
}

func newTestNews(id, ownerID string) *model.News {
	now := time.Now().UTC()
	return &model.News{
		ID:        id,
		Title:     "title " + id,
		Body:      "body " + id,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStore_CreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.CreateUser(ctx, newTestUser("u1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	err := store.CreateUser(ctx, newTestUser("u2", "alice@example.com"))
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestMemoryStore_CreateUser_ConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.CreateUser(ctx, newTestUser(fmt.Sprintf("u%d", i), "race@example.com"))
		}(i)
	}
	wg.Wait()
	close(errs)

	var successes, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrEmailExists):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 successful sign-up, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Errorf("expected %d duplicate rejections, got %d", attempts-1, duplicates)
	}
}

func TestMemoryStore_GetUser(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	user := newTestUser("u1", "alice@example.com")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := store.GetUserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", byID.Email)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Errorf("unexpected ID: %s", byEmail.ID)
	}

	// Case-sensitive lookup per storage contract
	if _, err := store.GetUserByEmail(ctx, "ALICE@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for different case, got %v", err)
	}

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryStore_GetUser_ReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.CreateUser(ctx, newTestUser("u1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	first, _ := store.GetUserByID(ctx, "u1")
	first.PasswordHash = "tampered"

	second, _ := store.GetUserByID(ctx, "u1")
	if second.PasswordHash == "tampered" {
		t.Error("mutating a returned user should not affect the store")
	}
}

func TestMemoryStore_DeleteUser(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.CreateUser(ctx, newTestUser("u1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := store.GetUserByID(ctx, "u1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}

	// Email is freed for re-registration
	if err := store.CreateUser(ctx, newTestUser("u2", "alice@example.com")); err != nil {
		t.Errorf("expected email to be reusable after delete, got %v", err)
	}
}

func TestMemoryStore_NewsCRUD(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	news := newTestNews("n1", "u1")
	if err := store.CreateNews(ctx, news); err != nil {
		t.Fatalf("CreateNews failed: %v", err)
	}

	got, err := store.GetNewsByID(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNewsByID failed: %v", err)
	}
	if got.Title != news.Title || got.OwnerID != "u1" {
		t.Errorf("unexpected news: %+v", got)
	}

	got.Title = "updated title"
	got.UpdatedAt = time.Now().UTC()
	if err := store.UpdateNews(ctx, got); err != nil {
		t.Fatalf("UpdateNews failed: %v", err)
	}

	updated, _ := store.GetNewsByID(ctx, "n1")
	if updated.Title != "updated title" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}

	if err := store.DeleteNews(ctx, "n1"); err != nil {
		t.Fatalf("DeleteNews failed: %v", err)
	}
	if _, err := store.GetNewsByID(ctx, "n1"); !errors.Is(err, ErrNewsNotFound) {
		t.Errorf("expected ErrNewsNotFound after delete, got %v", err)
	}
	if err := store.DeleteNews(ctx, "n1"); !errors.Is(err, ErrNewsNotFound) {
		t.Errorf("expected ErrNewsNotFound on double delete, got %v", err)
	}
}

func TestMemoryStore_ListNews_Ordering(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := store.CreateNews(ctx, newTestNews(fmt.Sprintf("n%d", i), "u1")); err != nil {
			t.Fatalf("CreateNews failed: %v", err)
		}
	}
	if err := store.CreateNews(ctx, newTestNews("other", "u2")); err != nil {
		t.Fatalf("CreateNews failed: %v", err)
	}

	all, err := store.ListNews(ctx)
	if err != nil {
		t.Fatalf("ListNews failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 articles, got %d", len(all))
	}
	if all[0].ID != "other" || all[3].ID != "n1" {
		t.Errorf("expected newest-first ordering, got %s..%s", all[0].ID, all[3].ID)
	}

	mine, err := store.ListNewsByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListNewsByOwner failed: %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("expected 3 owned articles, got %d", len(mine))
	}
	for _, n := range mine {
		if n.OwnerID != "u1" {
			t.Errorf("listed article %s not owned by u1", n.ID)
		}
	}
}

func TestMemoryStore_IncrementNewsViews(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.CreateNews(ctx, newTestNews("n1", "u1")); err != nil {
		t.Fatalf("CreateNews failed: %v", err)
	}

	if err := store.IncrementNewsViews(ctx, "n1", 1); err != nil {
		t.Fatalf("IncrementNewsViews failed: %v", err)
	}
	if err := store.IncrementNewsViews(ctx, "n1", 5); err != nil {
		t.Fatalf("IncrementNewsViews failed: %v", err)
	}

	got, _ := store.GetNewsByID(ctx, "n1")
	if got.ViewCount != 6 {
		t.Errorf("expected view count 6, got %d", got.ViewCount)
	}

	if err := store.IncrementNewsViews(ctx, "missing", 1); !errors.Is(err, ErrNewsNotFound) {
		t.Errorf("expected ErrNewsNotFound, got %v", err)
	}
}
