package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt cost used for stored passwords (2^10 rounds)
const DefaultPasswordCost = 10

// maxPasswordBytes is the bcrypt input limit
const maxPasswordBytes = 72

// ErrInvalidPassword is returned for input bcrypt cannot hash
var ErrInvalidPassword = errors.New("invalid password")

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher with a fixed bcrypt cost.
// Zero Cost means DefaultPasswordCost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher with DefaultPasswordCost
func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{Cost: DefaultPasswordCost}
}

// Hash returns the salted bcrypt digest of password
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultPasswordCost
	}
	return HashPassword(password, cost)
}

// Verify reports whether password matches hash
func (h BcryptHasher) Verify(password, hash string) bool {
	return VerifyPassword(password, hash)
}

// HashPassword хеширует пароль bcrypt'ом с указанной стоимостью.
// Ошибка возможна только на некорректном вводе (пустой пароль или длиннее 72 байт).
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password cannot be empty", ErrInvalidPassword)
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must not exceed %d bytes", ErrInvalidPassword, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword сравнивает пароль с сохраненным хешем.
// Несовпадение и битый хеш дают false, а не ошибку.
func VerifyPassword(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
