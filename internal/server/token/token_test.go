package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testConfig() Config {
	return Config{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "socialhub",
	}
}

func newTestIssuer(t *testing.T) (*Issuer, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	issuer, err := NewIssuer(testConfig(), WithClock(clock.Now))
	require.NoError(t, err)
	return issuer, clock
}

func TestNewIssuer(t *testing.T) {
	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "defaults for zero ttl", mutate: func(c *Config) { c.AccessTTL, c.RefreshTTL = 0, 0 }},
		{name: "hs512", mutate: func(c *Config) { c.SigningMethod = "HS512" }},
		{name: "missing access secret", mutate: func(c *Config) { c.AccessSecret = "" }, wantErr: true},
		{name: "missing refresh secret", mutate: func(c *Config) { c.RefreshSecret = "" }, wantErr: true},
		{name: "same secrets", mutate: func(c *Config) { c.RefreshSecret = c.AccessSecret }, wantErr: true},
		{name: "negative ttl", mutate: func(c *Config) { c.AccessTTL = -time.Second }, wantErr: true},
		{name: "rsa method", mutate: func(c *Config) { c.SigningMethod = "RS256" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			issuer, err := NewIssuer(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, issuer.AccessTTL())
			assert.Positive(t, issuer.RefreshTTL())
		})
	}
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	issuer, clock := newTestIssuer(t)

	signed, expiresAt, err := issuer.IssueAccessToken("user-1", "alice")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(15*time.Minute), expiresAt)

	claims, err := issuer.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "socialhub", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	issuer, clock := newTestIssuer(t)

	signed, _, err := issuer.IssueAccessToken("user-1", "alice")
	require.NoError(t, err)

	clock.Advance(14 * time.Minute)
	_, err = issuer.VerifyAccessToken(signed)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = issuer.VerifyAccessToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

// tamper меняет символ в середине подписи
func tamper(signed string) string {
	b := []byte(signed)
	i := len(b) - 10
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestVerifyAccessToken_Invalid(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	valid, _, err := issuer.IssueAccessToken("user-1", "alice")
	require.NoError(t, err)

	refresh, _, err := issuer.IssueRefreshToken("user-1")
	require.NoError(t, err)

	other, err := NewIssuer(Config{
		AccessSecret:  "another-access-secret",
		RefreshSecret: "another-refresh-secret",
		Issuer:        "socialhub",
	})
	require.NoError(t, err)
	foreign, _, err := other.IssueAccessToken("user-1", "alice")
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "socialhub",
			ExpiresAt: jwt.NewNumericDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}).SignedString([]byte(testConfig().AccessSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "tampered signature", token: tamper(valid)},
		{name: "refresh token used as access", token: refresh},
		{name: "signed by another secret", token: foreign},
		{name: "unexpected algorithm", token: hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.VerifyAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIssueAndVerifyRefreshToken(t *testing.T) {
	issuer, clock := newTestIssuer(t)

	signed, expiresAt, err := issuer.IssueRefreshToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(7*24*time.Hour), expiresAt)

	claims, err := issuer.VerifyRefreshToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	access, _, err := issuer.IssueAccessToken("user-1", "alice")
	require.NoError(t, err)
	_, err = issuer.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token must not verify as refresh")

	clock.Advance(8 * 24 * time.Hour)
	_, err = issuer.VerifyRefreshToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensIssuedInSameSecondDiffer(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	a1, _, err := issuer.IssueAccessToken("user-1", "alice")
	require.NoError(t, err)
	a2, _, err := issuer.IssueAccessToken("user-1", "alice")
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)

	r1, _, err := issuer.IssueRefreshToken("user-1")
	require.NoError(t, err)
	r2, _, err := issuer.IssueRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, r1, r2)
}
