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

const msgCommentNotFound = "comment not found"

// CommentService реализует CRUD комментариев
type CommentService struct {
	logger   *zap.Logger
	comments storage.CommentStorage
	posts    storage.PostStorage
	ids      IDGenerator
	now      Clock
}

// NewCommentService создает CommentService
func NewCommentService(logger *zap.Logger, comments storage.CommentStorage, posts storage.PostStorage, ids IDGenerator) *CommentService {
	return &CommentService{
		logger:   logger,
		comments: comments,
		posts:    posts,
		ids:      ids,
		now:      time.Now,
	}
}

// Create добавляет комментарий к существующему посту
func (s *CommentService) Create(ctx context.Context, actorID, postID, content string) (*models.Comment, error) {
	if postID == "" || strings.TrimSpace(content) == "" {
		return nil, apperr.New(apperr.KindValidation, "postId and content are required")
	}

	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return nil, apperr.New(apperr.KindNotFound, msgPostNotFound)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get post: %w", err))
	}

	now := s.now()
	comment := &models.Comment{
		ID:        s.ids.Next(),
		PostID:    postID,
		Sender:    actorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		// пост могли удалить между проверкой и вставкой
		if errors.Is(err, storage.ErrPostNotFound) {
			return nil, apperr.New(apperr.KindNotFound, msgPostNotFound)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create comment: %w", err))
	}

	s.logger.Info("comment created",
		zap.String("comment_id", comment.ID),
		zap.String("post_id", postID),
		zap.String("user_id", actorID))
	return comment, nil
}

// List возвращает все комментарии
func (s *CommentService) List(ctx context.Context) ([]*models.Comment, error) {
	comments, err := s.comments.ListComments(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

// ListByPost возвращает комментарии поста
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments, err := s.comments.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

// Get возвращает комментарий по ID
func (s *CommentService) Get(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			return nil, apperr.New(apperr.KindNotFound, msgCommentNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

// Update меняет текст комментария; только автор может его менять
func (s *CommentService) Update(ctx context.Context, id, actorID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.New(apperr.KindValidation, "content is required")
	}

	comment, err := s.owned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = s.now()

	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			return nil, apperr.New(apperr.KindNotFound, msgCommentNotFound)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to update comment: %w", err))
	}

	return comment, nil
}

// Delete удаляет комментарий; только автор может его удалить
func (s *CommentService) Delete(ctx context.Context, id, actorID string) error {
	if _, err := s.owned(ctx, id, actorID); err != nil {
		return err
	}

	if err := s.comments.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			return apperr.New(apperr.KindNotFound, msgCommentNotFound)
		}
		return apperr.Internal(fmt.Errorf("failed to delete comment: %w", err))
	}

	return nil
}

func (s *CommentService) owned(ctx context.Context, id, actorID string) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.Sender != actorID {
		return nil, apperr.New(apperr.KindForbidden, "you can only modify your own comments")
	}
	return comment, nil
}
