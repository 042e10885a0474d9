package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/socialhub/internal/apperr"
	"github.com/iudanet/socialhub/internal/crypto"
	"github.com/iudanet/socialhub/internal/idgen"
	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/internal/server/storage"
	"github.com/iudanet/socialhub/internal/server/storage/sqlstore"
	"github.com/iudanet/socialhub/internal/server/token"
)

var errStorageDown = errors.New("storage down")

// testEnv собирает сервисы поверх in-memory sqlite
type testEnv struct {
	store    *sqlstore.Storage
	issuer   *token.Issuer
	ids      *idgen.Generator
	hasher   crypto.PasswordHasher
	auth     *AuthService
	users    *UserService
	posts    *PostService
	comments *CommentService
}

func newTestIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		Issuer:        "socialhub",
	})
	require.NoError(t, err)
	return issuer
}

func setupTestEnv(t *testing.T, opts ...AuthOption) *testEnv {
	t.Helper()

	store, err := sqlstore.New(context.Background(), zaptest.NewLogger(t), sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ids, err := idgen.New(1)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	hasher := crypto.BcryptHasher{Cost: bcrypt.MinCost}
	issuer := newTestIssuer(t)

	return &testEnv{
		store:    store,
		issuer:   issuer,
		ids:      ids,
		hasher:   hasher,
		auth:     NewAuthService(logger, store, store, hasher, issuer, ids, opts...),
		users:    NewUserService(logger, store, hasher, ids),
		posts:    NewPostService(logger, store, ids),
		comments: NewCommentService(logger, store, store, ids),
	}
}

// steppingClock возвращает время, сдвигающееся на секунду при каждом вызове
func steppingClock(start time.Time) Clock {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

// requireKind проверяет, что err классифицирован как kind
func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "unexpected error: %v", err)
}

// failingTokens подменяет отдельные методы TokenStorage ошибкой
type failingTokens struct {
	storage.TokenStorage
	getErr    error
	deleteErr error
}

func (f *failingTokens) GetRefreshToken(ctx context.Context, tok string) (*models.RefreshToken, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.TokenStorage.GetRefreshToken(ctx, tok)
}

func (f *failingTokens) DeleteRefreshToken(ctx context.Context, tok string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.TokenStorage.DeleteRefreshToken(ctx, tok)
}

// failingUsers подменяет поиск пользователей ошибкой
type failingUsers struct {
	storage.UserStorage
	err error
}

func (f *failingUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func (f *failingUsers) FindByEmailOrUsername(context.Context, string, string) (*models.User, error) {
	return nil, f.err
}
