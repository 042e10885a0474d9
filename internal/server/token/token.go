// Package token выдает и проверяет access и refresh JWT.
// Access и refresh токены подписываются разными секретами, поэтому один тип
// токена никогда не проходит проверку как другой.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/segmentio/ksuid"
)

var (
	// ErrInvalidToken возвращается для токена с неверной подписью, алгоритмом или структурой
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken возвращается для access токена с истекшим exp
	ErrExpiredToken = errors.New("token expired")
)

// TTL по умолчанию, если Config оставляет поле нулевым
const (
	// DefaultAccessTTL время жизни access токена
	DefaultAccessTTL = 15 * time.Minute
	// DefaultRefreshTTL время жизни refresh токена
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims представляет claims access токена
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RefreshClaims представляет claims refresh токена
type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию выдачи токенов
type Config struct {
	AccessSecret  string
	RefreshSecret string
	SigningMethod string // HS256 (по умолчанию), HS384, HS512
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Option настраивает Issuer
type Option func(*Issuer)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// Issuer signs and verifies both token kinds. It is immutable after construction
// and safe for concurrent use.
type Issuer struct {
	method        *jwt.SigningMethodHMAC
	now           func() time.Time
	issuer        string
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer validates cfg and builds an Issuer. Zero TTLs fall back to the defaults.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.AccessTTL < 0 || cfg.RefreshTTL < 0 {
		return nil, errors.New("token TTLs must be positive")
	}

	var method *jwt.SigningMethodHMAC
	switch cfg.SigningMethod {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing method %q", cfg.SigningMethod)
	}

	i := &Issuer{
		method:        method,
		now:           time.Now,
		issuer:        cfg.Issuer,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

// AccessTTL returns the configured access token lifetime
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime
func (i *Issuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

// IssueAccessToken создает новый access token и возвращает его вместе со временем истечения
func (i *Issuer) IssueAccessToken(userID, username string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.accessTTL)

	claims := Claims{
		UserID:           userID,
		Username:         username,
		RegisteredClaims: i.registered(userID, now, expiresAt),
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.accessSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

// IssueRefreshToken создает новый refresh token.
// Возвращаемое время истечения сохраняется вместе с токеном в хранилище.
func (i *Issuer) IssueRefreshToken(userID string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.refreshTTL)

	claims := RefreshClaims{
		UserID:           userID,
		RegisteredClaims: i.registered(userID, now, expiresAt),
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.refreshSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyAccessToken проверяет подпись и срок действия access токена
func (i *Issuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := i.parse(tokenString, claims, i.accessSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return claims, nil
}

// VerifyRefreshToken проверяет подпись и срок действия refresh токена.
// Наличие токена в хранилище здесь не проверяется.
func (i *Issuer) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := i.parse(tokenString, claims, i.refreshSecret); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return claims, nil
}

func (i *Issuer) registered(subject string, now, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		// jti делает токены уникальными даже при выдаче в одну секунду
		ID: ksuid.New().String(),
	}
}

func (i *Issuer) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	return err
}
