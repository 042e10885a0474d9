package storage

import (
	"context"

	"github.com/iudanet/socialhub/internal/models"
)

// CommentStorage defines interface for comment persistence
type CommentStorage interface {
	// CreateComment returns ErrPostNotFound if the referenced post doesn't exist
	CreateComment(ctx context.Context, comment *models.Comment) error

	// GetComment returns ErrCommentNotFound if comment doesn't exist
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)

	ListComments(ctx context.Context) ([]*models.Comment, error)

	// ListCommentsByPost returns the post's comments oldest first
	ListCommentsByPost(ctx context.Context, postID string) ([]*models.Comment, error)

	// UpdateComment returns ErrCommentNotFound if comment doesn't exist
	UpdateComment(ctx context.Context, comment *models.Comment) error

	// DeleteComment returns ErrCommentNotFound if comment doesn't exist
	DeleteComment(ctx context.Context, commentID string) error
}

// Storage aggregates every store the server needs
type Storage interface {
	UserStorage
	TokenStorage
	PostStorage
	CommentStorage
	Ping(ctx context.Context) error
	Close() error
}
