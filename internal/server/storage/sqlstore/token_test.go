package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/internal/server/storage"
)

func TestTokenStorage_SaveRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	expiresAt := time.Now().Add(24 * time.Hour)

	tests := []struct {
		token     *models.RefreshToken
		wantError error
		name      string
	}{
		{
			name: "save new refresh token",
			token: &models.RefreshToken{
				Token:     "token123",
				UserID:    userID,
				ExpiresAt: expiresAt,
				CreatedAt: time.Now(),
			},
		},
		{
			name: "duplicate token string",
			token: &models.RefreshToken{
				Token:     "token123",
				UserID:    userID,
				ExpiresAt: expiresAt.Add(time.Hour),
				CreatedAt: time.Now(),
			},
			wantError: storage.ErrTokenAlreadyExists,
		},
		{
			name: "unknown owner",
			token: &models.RefreshToken{
				Token:     "orphan",
				UserID:    "missing-user",
				ExpiresAt: expiresAt,
				CreatedAt: time.Now(),
			},
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SaveRefreshToken(ctx, tt.token)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			// Verify token was saved
			retrieved, err := s.GetRefreshToken(ctx, tt.token.Token)
			require.NoError(t, err)
			assert.Equal(t, tt.token.Token, retrieved.Token)
			assert.Equal(t, tt.token.UserID, retrieved.UserID)
			assert.WithinDuration(t, tt.token.ExpiresAt, retrieved.ExpiresAt, time.Millisecond)
		})
	}
}

func TestTokenStorage_GetRefreshToken_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	retrieved, err := s.GetRefreshToken(ctx, "notfound")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	assert.Nil(t, retrieved)
}

func TestTokenStorage_GetUserTokens_OrderedByCreatedAt(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	otherID := createTestUser(t, ctx, s)

	now := time.Now()
	tokens := []*models.RefreshToken{
		{Token: "oldest", UserID: userID, ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now.Add(-2 * time.Hour)},
		{Token: "newest", UserID: userID, ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now},
		{Token: "middle", UserID: userID, ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now.Add(-time.Hour)},
		{Token: "foreign", UserID: otherID, ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now},
	}
	for _, token := range tokens {
		require.NoError(t, s.SaveRefreshToken(ctx, token))
	}

	retrieved, err := s.GetUserTokens(ctx, userID)
	require.NoError(t, err)
	require.Len(t, retrieved, 3)
	assert.Equal(t, "newest", retrieved[0].Token)
	assert.Equal(t, "middle", retrieved[1].Token)
	assert.Equal(t, "oldest", retrieved[2].Token)

	none, err := s.GetUserTokens(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTokenStorage_DeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     "deleteme",
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	require.NoError(t, s.DeleteRefreshToken(ctx, "deleteme"))

	_, err := s.GetRefreshToken(ctx, "deleteme")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	assert.ErrorIs(t, s.DeleteRefreshToken(ctx, "deleteme"), storage.ErrTokenNotFound)
}

func TestTokenStorage_DeleteUserTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	for _, tok := range []string{"t1", "t2", "t3"} {
		require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
			Token:     tok,
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))
	}

	count, err := s.DeleteUserTokens(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = s.DeleteUserTokens(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTokenStorage_DeleteExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	now := time.Now()

	tokens := []*models.RefreshToken{
		{Token: "expired1", UserID: userID, ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour)},
		{Token: "expired2", UserID: userID, ExpiresAt: now.Add(-time.Second), CreatedAt: now.Add(-time.Hour)},
		{Token: "valid1", UserID: userID, ExpiresAt: now.Add(time.Hour), CreatedAt: now},
		{Token: "valid2", UserID: userID, ExpiresAt: now.Add(7 * 24 * time.Hour), CreatedAt: now},
	}
	for _, token := range tokens {
		require.NoError(t, s.SaveRefreshToken(ctx, token))
	}

	count, err := s.DeleteExpiredTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	remaining, err := s.GetUserTokens(ctx, userID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	for _, token := range remaining {
		assert.Contains(t, []string{"valid1", "valid2"}, token.Token)
	}

	count, err = s.DeleteExpiredTokens(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, count)
}
