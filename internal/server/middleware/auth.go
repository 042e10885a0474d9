package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/server/handlers"
	"github.com/iudanet/socialhub/internal/server/token"
)

// AccessVerifier проверяет access token
type AccessVerifier interface {
	VerifyAccessToken(tokenString string) (*token.Claims, error)
}

// AuthMiddleware создает middleware для проверки JWT токена.
// Хранилище не используется: достаточно подписи и срока действия.
func AuthMiddleware(logger *zap.Logger, verifier AccessVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				logger.Warn("access denied", zap.String("reason", "missing"), zap.String("path", r.URL.Path))
				handlers.WriteError(w, logger, "no token provided", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("access denied", zap.String("reason", "malformed header"), zap.String("path", r.URL.Path))
				handlers.WriteError(w, logger, "invalid token", http.StatusUnauthorized)
				return
			}

			var tokenString string
			if len(parts) == 2 {
				tokenString = strings.TrimSpace(parts[1])
			}
			if tokenString == "" {
				logger.Warn("access denied", zap.String("reason", "missing"), zap.String("path", r.URL.Path))
				handlers.WriteError(w, logger, "no token provided", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.VerifyAccessToken(tokenString)
			if err != nil {
				if errors.Is(err, token.ErrExpiredToken) {
					logger.Warn("access denied", zap.String("reason", "expired"), zap.String("path", r.URL.Path))
					handlers.WriteError(w, logger, "token expired", http.StatusUnauthorized)
					return
				}
				logger.Warn("access denied", zap.String("reason", "invalid"), zap.String("path", r.URL.Path), zap.Error(err))
				handlers.WriteError(w, logger, "invalid token", http.StatusUnauthorized)
				return
			}

			logger.Debug("user authenticated",
				zap.String("user_id", claims.UserID),
				zap.String("username", claims.Username))

			// Передаем запрос дальше с claims в контексте
			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}
