package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newsdesk/newsdesk/internal/model"
)

// CreateNews inserts a new article.
func (r *Repository) CreateNews(ctx context.Context, news *model.News) error {
	query := `
		INSERT INTO news (id, title, body, owner_id, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		news.ID,
		news.Title,
		news.Body,
		news.OwnerID,
		news.ViewCount,
		news.CreatedAt,
		news.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}

	return nil
}

// GetNewsByID retrieves an article by its ID.
func (r *Repository) GetNewsByID(ctx context.Context, id string) (*model.News, error) {
	query := `
		SELECT id, title, body, owner_id, view_count, created_at, updated_at
		FROM news
		WHERE id = $1
	`

	var news model.News
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&news.ID,
		&news.Title,
		&news.Body,
		&news.OwnerID,
		&news.ViewCount,
		&news.CreatedAt,
		&news.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to get news by ID: %w", err)
	}

	return &news, nil
}

// ListNews retrieves articles, newest first.
func (r *Repository) ListNews(ctx context.Context) ([]*model.News, error) {
	query := `
		SELECT id, title, body, owner_id, view_count, created_at, updated_at
		FROM news
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	return scanNewsRows(rows)
}

// ListNewsByOwner retrieves all articles owned by the given user, newest first.
func (r *Repository) ListNewsByOwner(ctx context.Context, ownerID string) ([]*model.News, error) {
	query := `
		SELECT id, title, body, owner_id, view_count, created_at, updated_at
		FROM news
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list news by owner: %w", err)
	}
	defer rows.Close()

	return scanNewsRows(rows)
}

// UpdateNews persists mutable fields of an article. OwnerID and CreatedAt
// are immutable and never written after creation.
func (r *Repository) UpdateNews(ctx context.Context, news *model.News) error {
	query := `
		UPDATE news
		SET title = $2, body = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		news.ID,
		news.Title,
		news.Body,
		news.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNewsNotFound
	}

	return nil
}

// DeleteNews removes an article.
func (r *Repository) DeleteNews(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNewsNotFound
	}

	return nil
}

// IncrementNewsViews adds delta to the article's view counter.
// Concurrent increments are applied atomically by the database, but
// callers are free to batch and lose increments under shutdown races.
func (r *Repository) IncrementNewsViews(ctx context.Context, id string, delta int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE news SET view_count = view_count + $2 WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNewsNotFound
	}

	return nil
}

func scanNewsRows(rows pgx.Rows) ([]*model.News, error) {
	var items []*model.News
	for rows.Next() {
		var news model.News
		if err := rows.Scan(
			&news.ID,
			&news.Title,
			&news.Body,
			&news.OwnerID,
			&news.ViewCount,
			&news.CreatedAt,
			&news.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan news row: %w", err)
		}
		items = append(items, &news)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read news rows: %w", err)
	}

	return items, nil
}
