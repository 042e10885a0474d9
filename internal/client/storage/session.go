package storage

import (
	"context"
	"time"
)

// SessionStorage хранит сессию текущего пользователя на клиенте
type SessionStorage interface {
	// SaveSession сохраняет сессию, заменяя предыдущую
	SaveSession(ctx context.Context, session *Session) error

	// GetSession возвращает ErrSessionNotFound, если сессии нет
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession удаляет сессию (logout)
	DeleteSession(ctx context.Context) error

	// IsAuthenticated сообщает, есть ли сессия с неистекшим access token
	IsAuthenticated(ctx context.Context) (bool, error)
}

// Session данные входа, сохраненные клиентом
type Session struct {
	ServerURL       string `json:"server_url"`
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	AccessExpiresAt int64  `json:"access_expires_at"` // unix seconds
}

// AccessExpired сообщает, истек ли access token к моменту now
func (s *Session) AccessExpired(now time.Time) bool {
	return !now.Before(time.Unix(s.AccessExpiresAt, 0))
}
