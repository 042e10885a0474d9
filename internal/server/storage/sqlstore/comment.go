package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/internal/server/storage"
)

const commentColumns = `id, post_id, sender, content, created_at, updated_at`

// CreateComment stores a new comment
func (s *Storage) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := s.db.Rebind(`INSERT INTO comments (` + commentColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		comment.ID,
		comment.PostID,
		comment.Sender,
		comment.Content,
		comment.CreatedAt.UTC(),
		comment.UpdatedAt.UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrPostNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetComment retrieves comment by ID
func (s *Storage) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	comment := &models.Comment{}

	err := s.db.GetContext(ctx, comment,
		s.db.Rebind(`SELECT `+commentColumns+` FROM comments WHERE id = ?`), commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// ListComments returns all comments newest first
func (s *Storage) ListComments(ctx context.Context) ([]*models.Comment, error) {
	comments := []*models.Comment{}

	err := s.db.SelectContext(ctx, &comments,
		`SELECT `+commentColumns+` FROM comments ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// ListCommentsByPost returns comments of a post oldest first
func (s *Storage) ListCommentsByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments := []*models.Comment{}

	err := s.db.SelectContext(ctx, &comments,
		s.db.Rebind(`SELECT `+commentColumns+` FROM comments WHERE post_id = ? ORDER BY created_at, id`),
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list post comments: %w", err)
	}

	return comments, nil
}

// UpdateComment updates content and updated_at
func (s *Storage) UpdateComment(ctx context.Context, comment *models.Comment) error {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`),
		comment.Content,
		comment.UpdatedAt.UTC(),
		comment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return expectAffected(result, storage.ErrCommentNotFound)
}

// DeleteComment deletes comment by ID
func (s *Storage) DeleteComment(ctx context.Context, commentID string) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM comments WHERE id = ?`), commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return expectAffected(result, storage.ErrCommentNotFound)
}

var _ storage.Storage = (*Storage)(nil)
