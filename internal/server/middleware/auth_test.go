package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/startline/internal/server/handlers"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func testJWTConfig() handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:         []byte("test-secret-key"),
		AccessTokenTTL: 15 * time.Minute,
	}
}

// testHandler проверяет, что middleware положил данные станции в контекст
func testHandler(t *testing.T, expectedID, expectedName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := handlers.GetOrganizerID(r.Context())
		require.True(t, ok, "organizer_id should be in context")
		assert.Equal(t, expectedID, id)

		name, ok := handlers.GetOrganizerName(r.Context())
		require.True(t, ok, "organizer_name should be in context")
		assert.Equal(t, expectedName, name)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func mustNotBeCalled(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not be called")
	})
}

func TestAuthMiddleware_Success(t *testing.T) {
	cfg := testJWTConfig()

	token, _, err := handlers.GenerateAccessToken(cfg, "org-1", "finish-line")
	require.NoError(t, err)

	wrapped := AuthMiddleware(setupTestLogger(), cfg)(testHandler(t, "org-1", "finish-line"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/starts", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	cfg := testJWTConfig()

	token, _, err := handlers.GenerateAccessToken(cfg, "org-1", "finish-line")
	require.NoError(t, err)

	wrapped := AuthMiddleware(setupTestLogger(), cfg)(testHandler(t, "org-1", "finish-line"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/starts", nil)
	req.Header.Set("Authorization", "bearer "+token)

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	wrapped := AuthMiddleware(setupTestLogger(), testJWTConfig())(mustNotBeCalled(t))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/starts", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "missing token")
}

func TestAuthMiddleware_InvalidAuthHeaderFormat(t *testing.T) {
	wrapped := AuthMiddleware(setupTestLogger(), testJWTConfig())(mustNotBeCalled(t))

	tests := []struct {
		name   string
		header string
	}{
		{name: "no Bearer prefix", header: "token123"},
		{name: "wrong prefix", header: "Basic token123"},
		{name: "only Bearer", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/starts", nil)
			req.Header.Set("Authorization", tt.header)

			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "invalid token format")
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	cfg := testJWTConfig()

	expiredCfg := cfg
	expiredCfg.AccessTokenTTL = -time.Minute
	expired, _, err := handlers.GenerateAccessToken(expiredCfg, "org-1", "finish-line")
	require.NoError(t, err)

	foreignCfg := cfg
	foreignCfg.Secret = []byte("another-secret")
	foreign, _, err := handlers.GenerateAccessToken(foreignCfg, "org-1", "finish-line")
	require.NoError(t, err)

	wrapped := AuthMiddleware(setupTestLogger(), cfg)(mustNotBeCalled(t))

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed token", token: "invalid.token.here"},
		{name: "empty token", token: ""},
		{name: "random string", token: "randomstring123"},
		{name: "expired token", token: expired},
		{name: "wrong secret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/starts", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)

			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "invalid token")
		})
	}
}
