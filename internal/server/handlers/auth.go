package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/server/service"
	"github.com/iudanet/socialhub/pkg/api"
)

// AuthService определяет операции авторизации, которые нужны handler'у
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*service.RefreshResult, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	auth AuthService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *zap.Logger, auth AuthService) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		auth:      auth,
	}
}

// Register обрабатывает POST /auth/register
// Регистрация нового пользователя с выдачей пары токенов
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
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

	h.sendJSON(w, api.AuthResponse{
		Message:      "user registered successfully",
		User:         toAPIUser(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, http.StatusCreated)
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}

	h.sendJSON(w, api.AuthResponse{
		Message:      "login successful",
		User:         toAPIUser(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, http.StatusOK)
}

// Refresh обрабатывает POST /auth/refresh
// Выдает новый access token; refresh token остается прежним
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.sendAppError(w, r, err)
		return
	}

	h.sendJSON(w, api.RefreshResponse{
		Message:     "token refreshed",
		AccessToken: result.AccessToken,
	}, http.StatusOK)
}

// Logout обрабатывает POST /auth/logout (требует access token)
// Удаляет переданный refresh token; остальные сессии пользователя живут
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req api.LogoutRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		h.sendAppError(w, r, err)
		return
	}

	if userID, ok := GetUserID(r.Context()); ok {
		h.logger.Info("user logged out", zap.String("user_id", userID))
	}

	h.sendJSON(w, api.MessageResponse{Message: "logged out"}, http.StatusOK)
}
