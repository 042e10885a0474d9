package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/pkg/api"
)

// CommentService операции над комментариями
type CommentService interface {
	Create(ctx context.Context, actorID, postID, content string) (*models.Comment, error)
	List(ctx context.Context) ([]*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	Get(ctx context.Context, id string) (*models.Comment, error)
	Update(ctx context.Context, id, actorID, content string) (*models.Comment, error)
	Delete(ctx context.Context, id, actorID string) error
}

// CommentHandler обрабатывает /comments
type CommentHandler struct {
	responder
	comments CommentService
}

// NewCommentHandler создает CommentHandler
func NewCommentHandler(logger *zap.Logger, comments CommentService) *CommentHandler {
	return &CommentHandler{
		responder: responder{logger: logger},
		comments:  comments,
	}
}

// Create обрабатывает POST /comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req api.CreateCommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.comments.Create(r.Context(), actorID, req.PostID, req.Content)
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIComment(comment), http.StatusCreated)
}

// List обрабатывает GET /comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context())
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIComments(comments), http.StatusOK)
}

// ListByPost обрабатывает GET /comments/post/{postId}
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListByPost(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIComments(comments), http.StatusOK)
}

// Get обрабатывает GET /comments/{id}
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIComment(comment), http.StatusOK)
}

// Update обрабатывает PUT /comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req api.UpdateCommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.comments.Update(r.Context(), chi.URLParam(r, "id"), actorID, req.Content)
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIComment(comment), http.StatusOK)
}

// Delete обрабатывает DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), chi.URLParam(r, "id"), actorID); err != nil {
		h.sendAppError(w, r, err)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "comment deleted successfully"}, http.StatusOK)
}
