package models

import "time"

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`       // время создания
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`       // время последнего обновления
	ID           string    `json:"id" db:"id"`                      // UUID пользователя
	Username     string    `json:"username" db:"username"`          // уникальный username
	Email        string    `json:"email" db:"email"`                // уникальный email (lower-case)
	PasswordHash string    `json:"-" db:"password_hash"`            // bcrypt хеш пароля, наружу не отдается
	FirstName    string    `json:"firstName,omitempty" db:"first_name"`
	LastName     string    `json:"lastName,omitempty" db:"last_name"`
	Bio          string    `json:"bio,omitempty" db:"bio"`
	ProfileImage string    `json:"profileImage,omitempty" db:"profile_image"`
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"` // время истечения
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // время создания
	Token     string    `json:"-" db:"token"`              // подписанный refresh JWT
	UserID    string    `json:"userId" db:"user_id"`       // ID владельца
}

// IsExpired reports whether the token is past its expiry at now
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
