package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/apperr"
	"github.com/iudanet/socialhub/pkg/api"
)

// maxBodyBytes ограничивает размер JSON тела запроса
const maxBodyBytes = 1 << 20

// WriteJSON отправляет JSON ответ
func WriteJSON(w http.ResponseWriter, logger *zap.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// WriteError отправляет JSON ответ с ошибкой
func WriteError(w http.ResponseWriter, logger *zap.Logger, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	WriteJSON(w, logger, resp, statusCode)
}

// responder общая часть всех handler'ов
type responder struct {
	logger *zap.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	WriteJSON(w, h.logger, data, statusCode)
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	WriteError(w, h.logger, message, statusCode)
}

// sendAppError переводит ошибку сервиса в HTTP ответ.
// Детали внутренних ошибок только логируются.
func (h responder) sendAppError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	if kind == apperr.KindInternal {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	h.sendError(w, apperr.MessageOf(err), status)
}

// decodeJSON читает тело запроса в dst; пустое тело допустимо
func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("failed to decode request body", zap.String("path", r.URL.Path), zap.Error(err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

// actor возвращает ID пользователя из проверенного токена
func (h responder) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.sendError(w, "no token provided", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}
