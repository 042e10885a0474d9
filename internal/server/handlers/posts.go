package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/pkg/api"
)

// PostService операции над постами
type PostService interface {
	Create(ctx context.Context, actorID, message string) (*models.Post, error)
	List(ctx context.Context, sender string) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id, actorID, message string) (*models.Post, error)
	Delete(ctx context.Context, id, actorID string) error
}

// PostHandler обрабатывает /post
type PostHandler struct {
	responder
	posts PostService
}

// NewPostHandler создает PostHandler
func NewPostHandler(logger *zap.Logger, posts PostService) *PostHandler {
	return &PostHandler{
		responder: responder{logger: logger},
		posts:     posts,
	}
}

// Create обрабатывает POST /post
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req api.PostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.posts.Create(r.Context(), actorID, req.Message)
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIPost(post), http.StatusCreated)
}

// List обрабатывает GET /post, фильтр ?userId= необязателен
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIPosts(posts), http.StatusOK)
}

// Get обрабатывает GET /post/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIPost(post), http.StatusOK)
}

// Update обрабатывает PUT /post/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req api.PostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.posts.Update(r.Context(), chi.URLParam(r, "id"), actorID, req.Message)
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIPost(post), http.StatusOK)
}

// Delete обрабатывает DELETE /post/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.posts.Delete(r.Context(), id, actorID); err != nil {
		h.sendAppError(w, r, err)
		return
	}

	h.sendJSON(w, api.DeletePostResponse{
		Message: "post deleted successfully",
		PostID:  id,
	}, http.StatusOK)
}
