package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/cache"
)

// Limiter checks token-bucket rate limits for a client.
type Limiter interface {
	CheckUserRateLimit(ctx context.Context, userID string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
	CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter Limiter
	// RatePerSecond is the sustained request rate per client.
	RatePerSecond int
	// Burst is the bucket capacity.
	Burst int
}

// RateLimit returns a middleware that throttles requests per client.
// Requests that already passed the auth middleware are limited per user,
// anonymous ones per IP; mount it after Auth on authenticated routes.
// Limiter errors fail open, the limiter must never take the API down.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				result *cache.RateLimitResult
				err    error
			)

			if authCtx := auth.AuthFromContext(r.Context()); authCtx != nil {
				result, err = cfg.Limiter.CheckUserRateLimit(r.Context(), authCtx.UserID, cfg.RatePerSecond, cfg.Burst)
			} else {
				result, err = cfg.Limiter.CheckIPRateLimit(r.Context(), clientIP(r), cfg.RatePerSecond, cfg.Burst)
			}
			if err != nil {
				cfg.Logger.Warn("rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"RATE_LIMITED","message":"Too many requests"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
