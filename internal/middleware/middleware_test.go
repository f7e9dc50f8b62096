package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"starforge/internal/auth"
	"starforge/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenService() *auth.TokenService {
	return auth.NewTokenService(config.AuthConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		TokenExpiration: time.Hour,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAdmin(t *testing.T) {
	tokens := tokenService()
	admin, err := tokens.Generate("ops", auth.RoleAdmin)
	require.NoError(t, err)
	viewer, err := tokens.Generate("guest", "viewer")
	require.NoError(t, err)

	tests := []struct {
		name   string
		tokens *auth.TokenService
		header string
		want   int
	}{
		{"disabled", nil, "Bearer " + admin, http.StatusForbidden},
		{"missing header", tokens, "", http.StatusUnauthorized},
		{"wrong scheme", tokens, "Basic " + admin, http.StatusUnauthorized},
		{"invalid token", tokens, "Bearer nope", http.StatusUnauthorized},
		{"not admin", tokens, "Bearer " + viewer, http.StatusForbidden},
		{"admin", tokens, "bearer " + admin, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/universe/regenerate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			NewAuthenticator(tt.tokens).RequireAdmin(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireAdmin_StoresClaims(t *testing.T) {
	tokens := tokenService()
	admin, err := tokens.Generate("ops", auth.RoleAdmin)
	require.NoError(t, err)

	var subject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = GetClaimsFromContext(r).Subject
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	NewAuthenticator(tokens).RequireAdmin(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "ops", subject)
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2})
	h := rl.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/stars", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/stars", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusNoContent, rec.Code, "limits are per client")
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{Enabled: false, BurstSize: 0})
	rec := httptest.NewRecorder()
	rl.Middleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter_ForgetIdle(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	rl.getLimiter("10.0.0.1").Allow()

	rl.forgetIdle(time.Now())
	assert.Len(t, rl.clients, 1, "a drained bucket is kept")

	rl.forgetIdle(time.Now().Add(time.Minute))
	assert.Empty(t, rl.clients)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")

	assert.Equal(t, "192.168.1.1", getClientIP(req, false))
	assert.Equal(t, "203.0.113.5", getClientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", getClientIP(req, true))
}

func TestCORS_Preflight(t *testing.T) {
	c := NewCORS(config.FrontendConfig{URL: "http://localhost:3000"})

	req := httptest.NewRequest(http.MethodOptions, "/api/universe/regenerate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	c.Middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	c.Middleware(okHandler()).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
