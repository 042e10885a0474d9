package storage

import (
	"context"

	"github.com/iudanet/socialhub/internal/models"
)

// PostStorage defines interface for post persistence
type PostStorage interface {
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPost returns ErrPostNotFound if post doesn't exist
	GetPost(ctx context.Context, postID string) (*models.Post, error)

	// ListPosts returns posts newest first; an empty sender means all posts
	ListPosts(ctx context.Context, sender string) ([]*models.Post, error)

	// UpdatePost returns ErrPostNotFound if post doesn't exist
	UpdatePost(ctx context.Context, post *models.Post) error

	// DeletePost removes the post and its comments
	// Returns ErrPostNotFound if post doesn't exist
	DeletePost(ctx context.Context, postID string) error
}
