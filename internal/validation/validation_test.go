package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{
			name:     "valid username - lowercase",
			username: "alice",
		},
		{
			name:     "valid username - with underscore and numbers",
			username: "alice_smith42",
		},
		{
			name:     "valid username - min length",
			username: "bob",
		},
		{
			name:     "valid username - max length",
			username: strings.Repeat("a", 30),
		},
		{
			name:     "invalid - empty username",
			username: "",
			wantErr:  true,
			errMsg:   "username cannot be empty",
		},
		{
			name:     "invalid - too short (2 chars)",
			username: "ab",
			wantErr:  true,
			errMsg:   "must be at least 3 characters",
		},
		{
			name:     "invalid - too long (31 chars)",
			username: strings.Repeat("a", 31),
			wantErr:  true,
			errMsg:   "must not exceed 30 characters",
		},
		{
			name:     "invalid - with at sign",
			username: "user@name",
			wantErr:  true,
			errMsg:   "can only contain letters",
		},
		{
			name:     "invalid - with space",
			username: "user name",
			wantErr:  true,
			errMsg:   "can only contain letters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"simple address", "a@x.com", false},
		{"subdomain", "alice@mail.example.org", false},
		{"plus tag", "alice+news@example.com", false},
		{"empty", "", true},
		{"missing at", "alice.example.com", true},
		{"missing tld", "alice@example", true},
		{"double at", "alice@@example.com", true},
		{"whitespace", "ali ce@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestValidateBio(t *testing.T) {
	assert.NoError(t, ValidateBio(""))
	assert.NoError(t, ValidateBio(strings.Repeat("я", MaxBioLen)))
	assert.Error(t, ValidateBio(strings.Repeat("a", MaxBioLen+1)))
}
