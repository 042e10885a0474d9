package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/apperr"
	"github.com/iudanet/socialhub/internal/crypto"
	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/internal/server/storage"
	"github.com/iudanet/socialhub/internal/validation"
)

// CreateUserInput содержит данные для POST /users
type CreateUserInput = RegisterInput

// UpdateUserInput содержит изменяемые поля профиля; nil означает "не менять"
type UpdateUserInput struct {
	Username     *string
	Email        *string
	Password     *string
	FirstName    *string
	LastName     *string
	Bio          *string
	ProfileImage *string
}

// UserService реализует CRUD пользователей
type UserService struct {
	logger *zap.Logger
	users  storage.UserStorage
	hasher crypto.PasswordHasher
	ids    IDGenerator
	now    Clock
}

// NewUserService создает UserService
func NewUserService(logger *zap.Logger, users storage.UserStorage, hasher crypto.PasswordHasher, ids IDGenerator) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		hasher: hasher,
		ids:    ids,
		now:    time.Now,
	}
}

// Create создает пользователя без выдачи токенов
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	fields := newUserFields(in)
	if err := fields.validate(); err != nil {
		return nil, err
	}

	user, err := createUser(ctx, s.users, s.hasher, s.ids, s.now(), fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID))
	return user, nil
}

// List возвращает всех пользователей
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// Get возвращает пользователя по ID
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, msgUserNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Update меняет профиль. Менять можно только свой профиль.
func (s *UserService) Update(ctx context.Context, id, actorID string, in UpdateUserInput) (*models.User, error) {
	if actorID != id {
		return nil, apperr.New(apperr.KindForbidden, "you can only modify your own profile")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// проверяем уникальность только изменившихся полей
	var checkUsername, checkEmail string

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, apperr.New(apperr.KindValidation, err.Error())
		}
		user.Username = *in.Username
		checkUsername = user.Username
	}

	if in.Email != nil {
		email := validation.NormalizeEmail(*in.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, apperr.New(apperr.KindValidation, msgInvalidEmail)
		}
		if email != user.Email {
			user.Email = email
			checkEmail = email
		}
	}

	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, apperr.New(apperr.KindValidation, err.Error())
		}
		user.Bio = *in.Bio
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}

	if in.Password != nil {
		hash, err := hashPassword(s.hasher, *in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	conflict := apperr.New(apperr.KindConflict, msgUserExists)

	if checkUsername != "" || checkEmail != "" {
		existing, err := s.users.FindByEmailOrUsername(ctx, checkEmail, checkUsername)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, conflict
		case err != nil && !errors.Is(err, storage.ErrUserNotFound):
			return nil, apperr.Internal(fmt.Errorf("failed to check user uniqueness: %w", err))
		}
	}

	user.UpdatedAt = s.now()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrUserAlreadyExists):
			return nil, conflict
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, apperr.New(apperr.KindNotFound, msgUserNotFound)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to update user: %w", err))
	}

	s.logger.Info("user updated", zap.String("user_id", user.ID))
	return user, nil
}

// Delete удаляет свой профиль вместе с refresh токенами
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	if actorID != id {
		return apperr.New(apperr.KindForbidden, "you can only delete your own profile")
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.New(apperr.KindNotFound, msgUserNotFound)
		}
		return apperr.Internal(fmt.Errorf("failed to delete user: %w", err))
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}
