package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/internal/server/service"
	"github.com/iudanet/socialhub/pkg/api"
)

// UserService операции над пользователями
type UserService interface {
	Create(ctx context.Context, in service.CreateUserInput) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id, actorID string, in service.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id, actorID string) error
}

// UserHandler обрабатывает /users
type UserHandler struct {
	responder
	users UserService
}

// NewUserHandler создает UserHandler
func NewUserHandler(logger *zap.Logger, users UserService) *UserHandler {
	return &UserHandler{
		responder: responder{logger: logger},
		users:     users,
	}
}

// userID читает и проверяет {id} из пути
func (h *UserHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		h.sendError(w, "invalid user id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// Create обрабатывает POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateUserRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}

	h.sendJSON(w, toAPIUser(user), http.StatusCreated)
}

// List обрабатывает GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIUsers(users), http.StatusOK)
}

// Get обрабатывает GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}

// Update обрабатывает PUT /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Update(r.Context(), id, actorID, service.UpdateUserInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}
	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}

// Delete обрабатывает DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id, actorID); err != nil {
		h.sendAppError(w, r, err)
		return
	}

	h.sendJSON(w, api.DeleteUserResponse{
		Message: "user deleted successfully",
		UserID:  id,
	}, http.StatusOK)
}
