package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/socialhub/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "secret", req.Password)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			Message:      "user registered successfully",
			User:         &api.User{ID: "u1", Username: "alice"},
			AccessToken:  "at",
			RefreshToken: "rt",
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Register(context.Background(), api.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "at", resp.AccessToken)
	assert.Equal(t, "rt", resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
}

// TestClient_Errors проверяет разбор ошибок сервера
func TestClient_Errors(t *testing.T) {
	tests := []struct {
		responseBody   any
		name           string
		expectedErrMsg string
		statusCode     int
	}{
		{
			name:           "conflict",
			statusCode:     http.StatusConflict,
			responseBody:   api.ErrorResponse{Error: "Conflict", Message: "username or email already exists"},
			expectedErrMsg: "server error (409): username or email already exists",
		},
		{
			name:           "validation",
			statusCode:     http.StatusBadRequest,
			responseBody:   api.ErrorResponse{Error: "Bad Request", Message: "invalid email format"},
			expectedErrMsg: "server error (400): invalid email format",
		},
		{
			name:           "plain text body",
			statusCode:     http.StatusBadGateway,
			responseBody:   "upstream down",
			expectedErrMsg: "server error (502): upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if errResp, ok := tt.responseBody.(api.ErrorResponse); ok {
					_ = json.NewEncoder(w).Encode(errResp)
				} else {
					_, _ = w.Write([]byte(tt.responseBody.(string)))
				}
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Register(context.Background(), api.RegisterRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
			assert.True(t, IsStatus(err, tt.statusCode))

			var se *ServerError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.statusCode, se.StatusCode)
		})
	}
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Unauthorized", Message: "invalid email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.AuthResponse{AccessToken: "at", RefreshToken: "rt"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Login(context.Background(), api.LoginRequest{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "at", resp.AccessToken)

	_, err = client.Login(context.Background(), api.LoginRequest{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Contains(t, err.Error(), "login request failed")
}

func TestClient_Refresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)

		var req api.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "rt", req.RefreshToken)

		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Message: "token refreshed", AccessToken: "new-at"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Refresh(context.Background(), "rt")
	require.NoError(t, err)
	assert.Equal(t, "new-at", resp.AccessToken)
}

func TestClient_Logout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))

		var req api.LogoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "rt", req.RefreshToken)

		_ = json.NewEncoder(w).Encode(api.MessageResponse{Message: "logged out"})
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).Logout(context.Background(), "at", "rt"))
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", Version: "1.0.0"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Health(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
