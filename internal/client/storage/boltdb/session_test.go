package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/socialhub/internal/client/storage"
)

func testSession(expiresAt time.Time) *storage.Session {
	return &storage.Session{
		ServerURL:       "http://localhost:8080",
		UserID:          "user-id-123",
		Username:        "alice",
		Email:           "alice@example.com",
		AccessToken:     "access-token",
		RefreshToken:    "refresh-token",
		AccessExpiresAt: expiresAt.Unix(),
	}
}

func TestStorage_SaveGetDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	session := testSession(time.Now().Add(time.Hour))
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, store.DeleteSession(ctx))

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// повторное удаление
	assert.ErrorIs(t, store.DeleteSession(ctx), storage.ErrSessionNotFound)
}

func TestStorage_SaveSessionOverwrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSession(ctx, testSession(time.Now().Add(time.Hour))))

	second := testSession(time.Now().Add(2 * time.Hour))
	second.AccessToken = "new-access-token"
	require.NoError(t, store.SaveSession(ctx, second))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", got.AccessToken)
}

func TestStorage_IsAuthenticated(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		session *storage.Session
		name    string
		want    bool
	}{
		{name: "no session", want: false},
		{name: "valid access token", session: testSession(now.Add(time.Minute)), want: true},
		{name: "expired access token", session: testSession(now.Add(-time.Minute)), want: false},
		{name: "expires exactly now", session: testSession(now), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			store.now = func() time.Time { return now }

			if tt.session != nil {
				require.NoError(t, store.SaveSession(ctx, tt.session))
			}

			ok, err := store.IsAuthenticated(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "client.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(ctx, testSession(time.Now().Add(time.Hour))))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}
