package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/socialhub/internal/server/token"
	"github.com/iudanet/socialhub/pkg/api"
)

const (
	testUserID  = "3f2b8c1e-7a4d-4c2e-9b1a-6d5e4f3a2b1c"
	otherUserID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

// doRequest выполняет запрос через handler; непустой actor кладет claims в контекст
func doRequest(t *testing.T, h http.Handler, method, path string, body any, actor string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req = req.WithContext(WithClaims(req.Context(), &token.Claims{UserID: actor, Username: "alice"}))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeResponse читает JSON тело ответа
func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// requireError проверяет статус и сообщение ErrorResponse
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse[api.ErrorResponse](t, rec)
	require.Equal(t, http.StatusText(status), resp.Error)
	if message != "" {
		require.Equal(t, message, resp.Message)
	}
}
