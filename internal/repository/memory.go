package repository

import (
	"context"
	"sync"

	"github.com/newsdesk/newsdesk/internal/model"
)

// MemoryStore is a thread-safe in-memory implementation of the user and
// news stores, suitable for tests and local development. It enforces the
// same email uniqueness invariant as the PostgreSQL schema.
type MemoryStore struct {
	mu sync.RWMutex

	usersByID    map[string]*model.User
	usersByEmail map[string]*model.User
	newsByID     map[string]*model.News
	newsOrder    []string // insertion order of news IDs
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		usersByID:    make(map[string]*model.User),
		usersByEmail: make(map[string]*model.User),
		newsByID:     make(map[string]*model.News),
	}
}

// Ping always succeeds; the store has no external dependency.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// CreateUser inserts a user, rejecting duplicate emails under the lock so
// concurrent sign-ups cannot both succeed.
func (m *MemoryStore) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.usersByEmail[user.Email]; exists {
		return ErrEmailExists
	}

	cp := *user
	m.usersByID[cp.ID] = &cp
	m.usersByEmail[cp.Email] = &cp
	return nil
}

// GetUserByID retrieves a user by ID.
func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// GetUserByEmail retrieves a user by email (case-sensitive).
func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// DeleteUser removes a user record. Used by tests to exercise tokens that
// outlive their subject.
func (m *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.usersByID[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(m.usersByID, id)
	delete(m.usersByEmail, u.Email)
	return nil
}

// CreateNews inserts an article.
func (m *MemoryStore) CreateNews(ctx context.Context, news *model.News) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *news
	m.newsByID[cp.ID] = &cp
	m.newsOrder = append(m.newsOrder, cp.ID)
	return nil
}

// GetNewsByID retrieves an article by ID.
func (m *MemoryStore) GetNewsByID(ctx context.Context, id string) (*model.News, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.newsByID[id]
	if !ok {
		return nil, ErrNewsNotFound
	}
	cp := *n
	return &cp, nil
}

// ListNews returns all articles, newest first.
func (m *MemoryStore) ListNews(ctx context.Context) ([]*model.News, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]*model.News, 0, len(m.newsOrder))
	for i := len(m.newsOrder) - 1; i >= 0; i-- {
		if n, ok := m.newsByID[m.newsOrder[i]]; ok {
			cp := *n
			items = append(items, &cp)
		}
	}
	return items, nil
}

// ListNewsByOwner returns the given owner's articles, newest first.
func (m *MemoryStore) ListNewsByOwner(ctx context.Context, ownerID string) ([]*model.News, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []*model.News
	for i := len(m.newsOrder) - 1; i >= 0; i-- {
		if n, ok := m.newsByID[m.newsOrder[i]]; ok && n.OwnerID == ownerID {
			cp := *n
			items = append(items, &cp)
		}
	}
	return items, nil
}

// UpdateNews persists the article's mutable fields.
func (m *MemoryStore) UpdateNews(ctx context.Context, news *model.News) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.newsByID[news.ID]
	if !ok {
		return ErrNewsNotFound
	}
	current.Title = news.Title
	current.Body = news.Body
	current.UpdatedAt = news.UpdatedAt
	return nil
}

// DeleteNews removes an article.
func (m *MemoryStore) DeleteNews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.newsByID[id]; !ok {
		return ErrNewsNotFound
	}
	delete(m.newsByID, id)
	return nil
}

// IncrementNewsViews adds delta to the article's view counter.
func (m *MemoryStore) IncrementNewsViews(ctx context.Context, id string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.newsByID[id]
	if !ok {
		return ErrNewsNotFound
	}
	n.ViewCount += delta
	return nil
}
