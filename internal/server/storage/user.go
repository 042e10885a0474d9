package storage

import (
	"context"

	"github.com/iudanet/socialhub/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username or email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves user by (normalized) email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByEmailOrUsername returns any user holding the email or the username
	// Returns ErrUserNotFound if neither is taken
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)

	// ListUsers returns all users ordered by creation time
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser updates user information
	// Returns ErrUserNotFound if user doesn't exist, ErrUserAlreadyExists on a uniqueness clash
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes user by ID together with the user's refresh tokens
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID string) error
}
