package handlers

import (
	"context"

	"github.com/iudanet/socialhub/internal/server/token"
)

// contextKey тип для ключей контекста
type contextKey string

// ClaimsKey ключ для хранения claims access токена в контексте
const ClaimsKey contextKey = "claims"

// WithClaims кладет claims проверенного access токена в контекст
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ClaimsFromContext извлекает claims из контекста запроса
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*token.Claims)
	return claims, ok && claims != nil
}

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// GetUsername извлекает username из контекста запроса
func GetUsername(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.Username, true
}
