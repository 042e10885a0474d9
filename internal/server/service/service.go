// Package service содержит бизнес-логику сервера: регистрацию и сессии
// (AuthService) и CRUD пользователей, постов и комментариев.
// Все методы возвращают *apperr.Error для доменных ошибок.
package service

import (
	"errors"
	"time"

	"github.com/iudanet/socialhub/internal/apperr"
	"github.com/iudanet/socialhub/internal/crypto"
	"github.com/iudanet/socialhub/internal/validation"
)

// IDGenerator issues identifiers for new records
type IDGenerator interface {
	// Next returns an ID for posts and comments
	Next() string
	// UserID returns an ID for users
	UserID() string
}

// Clock returns the current time
type Clock func() time.Time

const (
	msgRegisterRequired = "username, email, and password are required"
	msgInvalidEmail     = "invalid email format"
	msgUserExists       = "username or email already exists"
	msgUserNotFound     = "user not found"
)

// newUserFields holds the fields shared by registration and POST /users
type newUserFields struct {
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Bio          string
	ProfileImage string
}

// validate normalizes the email in place and checks every field
func (f *newUserFields) validate() error {
	f.Email = validation.NormalizeEmail(f.Email)

	if f.Username == "" || f.Email == "" || f.Password == "" {
		return apperr.New(apperr.KindValidation, msgRegisterRequired)
	}

	if err := validation.ValidateEmail(f.Email); err != nil {
		return apperr.New(apperr.KindValidation, msgInvalidEmail)
	}

	if err := validation.ValidateUsername(f.Username); err != nil {
		return apperr.New(apperr.KindValidation, err.Error())
	}

	if err := validation.ValidateBio(f.Bio); err != nil {
		return apperr.New(apperr.KindValidation, err.Error())
	}

	return nil
}

// hashPassword maps hasher input errors to validation failures
func hashPassword(hasher crypto.PasswordHasher, password string) (string, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return "", apperr.Wrap(apperr.KindValidation, "password must be between 1 and 72 bytes", err)
		}
		return "", apperr.Internal(err)
	}
	return hash, nil
}
