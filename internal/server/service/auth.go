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
	"github.com/iudanet/socialhub/internal/server/token"
	"github.com/iudanet/socialhub/internal/validation"
)

// RegisterInput содержит данные регистрации
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Bio          string
	ProfileImage string
}

// AuthResult возвращается регистрацией и логином
type AuthResult struct {
	User            *models.User
	AccessExpiresAt time.Time
	AccessToken     string
	RefreshToken    string
}

// RefreshResult возвращается обменом refresh токена
type RefreshResult struct {
	ExpiresAt   time.Time
	AccessToken string
}

// AuthOption настраивает AuthService
type AuthOption func(*AuthService)

// WithMaxSessions ограничивает число активных refresh токенов на пользователя.
// 0 означает без ограничений.
func WithMaxSessions(n int) AuthOption {
	return func(s *AuthService) {
		s.maxSessions = n
	}
}

// WithAuthClock подменяет источник времени
func WithAuthClock(now Clock) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// AuthService реализует register/login/refresh/logout
type AuthService struct {
	logger      *zap.Logger
	users       storage.UserStorage
	tokens      storage.TokenStorage
	hasher      crypto.PasswordHasher
	issuer      *token.Issuer
	ids         IDGenerator
	now         Clock
	maxSessions int
}

// NewAuthService создает AuthService
func NewAuthService(
	logger *zap.Logger,
	users storage.UserStorage,
	tokens storage.TokenStorage,
	hasher crypto.PasswordHasher,
	issuer *token.Issuer,
	ids IDGenerator,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		logger: logger,
		users:  users,
		tokens: tokens,
		hasher: hasher,
		issuer: issuer,
		ids:    ids,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register создает пользователя и сразу открывает для него сессию
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	fields := newUserFields(in)
	if err := fields.validate(); err != nil {
		return nil, err
	}

	user, err := createUser(ctx, s.users, s.hasher, s.ids, s.now(), fields)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			s.logger.Warn("registration conflict", zap.String("username", fields.Username))
		}
		return nil, err
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID))

	return result, nil
}

// Login проверяет email и пароль. Неизвестный email и неверный пароль
// дают одинаковую ошибку.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "email and password are required")
	}

	invalid := apperr.New(apperr.KindInvalidCredentials, "invalid email or password")

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.Warn("login failed", zap.String("reason", "unknown email"))
			return nil, invalid
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn("login failed", zap.String("reason", "wrong password"), zap.String("user_id", user.ID))
		return nil, invalid
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID))

	return result, nil
}

// Refresh выдает новый access token по действующему refresh токену.
// Сам refresh token не меняется.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, apperr.New(apperr.KindValidation, "refresh token is required")
	}

	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("refresh failed", zap.String("reason", "invalid token"))
		return nil, apperr.Wrap(apperr.KindInvalidToken, "invalid refresh token", err)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.Warn("refresh failed", zap.String("reason", "user not found"), zap.String("user_id", claims.UserID))
			return nil, apperr.New(apperr.KindUserNotFound, msgUserNotFound)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	invalidOrExpired := apperr.New(apperr.KindInvalidOrExpiredToken, "invalid or expired refresh token")

	stored, err := s.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			s.logger.Warn("refresh failed", zap.String("reason", "token not stored"), zap.String("user_id", user.ID))
			return nil, invalidOrExpired
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get refresh token: %w", err))
	}

	if stored.UserID != user.ID || stored.IsExpired(s.now()) {
		s.logger.Warn("refresh failed", zap.String("reason", "token expired or foreign"), zap.String("user_id", user.ID))
		return nil, invalidOrExpired
	}

	accessToken, expiresAt, err := s.issuer.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.logger.Info("access token refreshed", zap.String("user_id", user.ID))

	return &RefreshResult{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout удаляет refresh token. Пустой или уже удаленный токен не ошибка.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil
		}
		return apperr.Internal(fmt.Errorf("failed to delete refresh token: %w", err))
	}

	return nil
}

// openSession выпускает пару токенов и сохраняет refresh token
func (s *AuthService) openSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessToken, accessExpiresAt, err := s.issuer.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, refreshExpiresAt, err := s.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Сохраняем refresh token в БД
	stored := &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: s.now(),
	}
	if err := s.tokens.SaveRefreshToken(ctx, stored); err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to save refresh token: %w", err))
	}

	if s.maxSessions > 0 {
		s.trimSessions(ctx, user.ID)
	}

	return &AuthResult{
		User:            user,
		AccessToken:     accessToken,
		AccessExpiresAt: accessExpiresAt,
		RefreshToken:    refreshToken,
	}, nil
}

// trimSessions удаляет самые старые refresh токены сверх лимита.
// Ошибки не критичны: логируем и продолжаем.
func (s *AuthService) trimSessions(ctx context.Context, userID string) {
	tokens, err := s.tokens.GetUserTokens(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to list user sessions", zap.String("user_id", userID), zap.Error(err))
		return
	}

	if len(tokens) <= s.maxSessions {
		return
	}

	removed := 0
	for _, t := range tokens[s.maxSessions:] {
		if err := s.tokens.DeleteRefreshToken(ctx, t.Token); err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
			s.logger.Warn("failed to delete old session", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		removed++
	}

	s.logger.Info("old sessions removed", zap.String("user_id", userID), zap.Int("count", removed))
}

// createUser хеширует пароль и сохраняет пользователя; fields уже провалидированы
func createUser(
	ctx context.Context,
	users storage.UserStorage,
	hasher crypto.PasswordHasher,
	ids IDGenerator,
	now time.Time,
	fields newUserFields,
) (*models.User, error) {
	conflict := apperr.New(apperr.KindConflict, msgUserExists)

	if _, err := users.FindByEmailOrUsername(ctx, fields.Email, fields.Username); err == nil {
		return nil, conflict
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, apperr.Internal(fmt.Errorf("failed to check user uniqueness: %w", err))
	}

	hash, err := hashPassword(hasher, fields.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           ids.UserID(),
		Username:     fields.Username,
		Email:        fields.Email,
		PasswordHash: hash,
		FirstName:    fields.FirstName,
		LastName:     fields.LastName,
		Bio:          fields.Bio,
		ProfileImage: fields.ProfileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.CreateUser(ctx, user); err != nil {
		// уникальный индекс ловит гонку двух одновременных регистраций
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, conflict
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	return user, nil
}
