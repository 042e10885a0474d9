package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/internal/server/storage"
)

const postColumns = `id, message, sender, created_at, updated_at`

// CreatePost stores a new post
func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	query := s.db.Rebind(`INSERT INTO posts (` + postColumns + `) VALUES (?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		post.ID,
		post.Message,
		post.Sender,
		post.CreatedAt.UTC(),
		post.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetPost retrieves post by ID
func (s *Storage) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post := &models.Post{}

	err := s.db.GetContext(ctx, post, s.db.Rebind(`SELECT `+postColumns+` FROM posts WHERE id = ?`), postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// ListPosts returns posts newest first, optionally filtered by sender
func (s *Storage) ListPosts(ctx context.Context, sender string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	var args []any
	if sender != "" {
		query += ` WHERE sender = ?`
		args = append(args, sender)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	posts := []*models.Post{}
	if err := s.db.SelectContext(ctx, &posts, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// UpdatePost updates message and updated_at
func (s *Storage) UpdatePost(ctx context.Context, post *models.Post) error {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE posts SET message = ?, updated_at = ? WHERE id = ?`),
		post.Message,
		post.UpdatedAt.UTC(),
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return expectAffected(result, storage.ErrPostNotFound)
}

// DeletePost deletes post by ID; its comments go with it via ON DELETE CASCADE
func (s *Storage) DeletePost(ctx context.Context, postID string) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM posts WHERE id = ?`), postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return expectAffected(result, storage.ErrPostNotFound)
}
