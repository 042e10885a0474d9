package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/apperr"
	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/internal/server/storage"
)

const msgPostNotFound = "post not found"

// PostService реализует CRUD постов
type PostService struct {
	logger *zap.Logger
	posts  storage.PostStorage
	ids    IDGenerator
	now    Clock
}

// NewPostService создает PostService
func NewPostService(logger *zap.Logger, posts storage.PostStorage, ids IDGenerator) *PostService {
	return &PostService{
		logger: logger,
		posts:  posts,
		ids:    ids,
		now:    time.Now,
	}
}

// Create публикует пост от имени actorID
func (s *PostService) Create(ctx context.Context, actorID, message string) (*models.Post, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.New(apperr.KindValidation, "message is required")
	}

	now := s.now()
	post := &models.Post{
		ID:        s.ids.Next(),
		Message:   message,
		Sender:    actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create post: %w", err))
	}

	s.logger.Info("post created", zap.String("post_id", post.ID), zap.String("user_id", actorID))
	return post, nil
}

// List возвращает посты; пустой sender означает все посты
func (s *PostService) List(ctx context.Context, sender string) ([]*models.Post, error) {
	posts, err := s.posts.ListPosts(ctx, sender)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return posts, nil
}

// Get возвращает пост по ID
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return nil, apperr.New(apperr.KindNotFound, msgPostNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return post, nil
}

// Update меняет текст поста; только автор может его менять
func (s *PostService) Update(ctx context.Context, id, actorID, message string) (*models.Post, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.New(apperr.KindValidation, "message is required")
	}

	post, err := s.owned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	post.Message = message
	post.UpdatedAt = s.now()

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return nil, apperr.New(apperr.KindNotFound, msgPostNotFound)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to update post: %w", err))
	}

	return post, nil
}

// Delete удаляет пост вместе с комментариями; только автор может его удалить
func (s *PostService) Delete(ctx context.Context, id, actorID string) error {
	if _, err := s.owned(ctx, id, actorID); err != nil {
		return err
	}

	if err := s.posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return apperr.New(apperr.KindNotFound, msgPostNotFound)
		}
		return apperr.Internal(fmt.Errorf("failed to delete post: %w", err))
	}

	s.logger.Info("post deleted", zap.String("post_id", id), zap.String("user_id", actorID))
	return nil
}

func (s *PostService) owned(ctx context.Context, id, actorID string) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Sender != actorID {
		return nil, apperr.New(apperr.KindForbidden, "you can only modify your own posts")
	}
	return post, nil
}
