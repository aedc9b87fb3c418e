package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/cache"
	"github.com/newsdesk/newsdesk/internal/repository"
	"github.com/newsdesk/newsdesk/internal/service"
)

// fakeLimiter records which limit was consulted and returns a canned result.
type fakeLimiter struct {
	userIDs []string
	ips     []string
	result  *cache.RateLimitResult
	err     error
}

func (f *fakeLimiter) CheckUserRateLimit(ctx context.Context, userID string, ratePerSecond, burst int) (*cache.RateLimitResult, error) {
	f.userIDs = append(f.userIDs, userID)
	return f.result, f.err
}

func (f *fakeLimiter) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error) {
	f.ips = append(f.ips, ip)
	return f.result, f.err
}

func allowedResult() *cache.RateLimitResult {
	return &cache.RateLimitResult{
		Allowed:   true,
		Remaining: 9,
		ResetAt:   time.Now().Add(time.Second),
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// A request that passed Auth must be limited by user ID, not by IP.
func TestRateLimit_PerUserAfterAuth(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemory()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	identity := service.NewIdentityService(store, tokens, nil)

	user, token, err := identity.SignUp(context.Background(), "alice@example.com", "pw123", "Alice")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	limiter := &fakeLimiter{result: allowedResult()}
	authMw := Auth(AuthConfig{Logger: logger, Identity: identity})
	limitMw := RateLimit(RateLimitConfig{Logger: logger, Limiter: limiter, RatePerSecond: 10, Burst: 10})

	// Same ordering as the router: auth first, then the limiter.
	handler := authMw(limitMw(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(limiter.userIDs) != 1 || limiter.userIDs[0] != user.ID {
		t.Errorf("expected one per-user check for %s, got users=%v ips=%v", user.ID, limiter.userIDs, limiter.ips)
	}
	if len(limiter.ips) != 0 {
		t.Errorf("authenticated request must not be limited per IP, got %v", limiter.ips)
	}
}

func TestRateLimit_PerIPWhenAnonymous(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := &fakeLimiter{result: allowedResult()}
	handler := RateLimit(RateLimitConfig{Logger: logger, Limiter: limiter, RatePerSecond: 10, Burst: 10})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news", nil)
	req.RemoteAddr = "192.0.2.7:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(limiter.ips) != 1 || limiter.ips[0] != "192.0.2.7" {
		t.Errorf("expected one per-IP check for 192.0.2.7, got %v", limiter.ips)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "9" {
		t.Errorf("unexpected remaining header: %s", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimit_DeniedRequest(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := &fakeLimiter{result: &cache.RateLimitResult{
		Allowed:    false,
		Remaining:  0,
		ResetAt:    time.Now().Add(2 * time.Second),
		RetryAfter: 2 * time.Second,
	}}
	handler := RateLimit(RateLimitConfig{Logger: logger, Limiter: limiter, RatePerSecond: 1, Burst: 1})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "2" {
		t.Errorf("unexpected Retry-After: %s", rec.Header().Get("Retry-After"))
	}
}

// Limiter failures must not block requests.
func TestRateLimit_FailsOpen(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := &fakeLimiter{err: errors.New("redis unavailable")}
	handler := RateLimit(RateLimitConfig{Logger: logger, Limiter: limiter, RatePerSecond: 10, Burst: 10})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected fail-open 200, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RateLimit(RateLimitConfig{Logger: logger})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
