package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
)

// KeyFunc extracts the bucket key from a request. An empty key bypasses
// the limiter.
type KeyFunc func(r *http.Request) string

type middlewareConfig struct {
	onLimited http.Handler
	logger    *slog.Logger
	now       func() time.Time
}

type MiddlewareOption func(*middlewareConfig)

// WithLimitedHandler replaces the plain 429 response.
func WithLimitedHandler(h http.Handler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onLimited = h
		}
	}
}

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware rejects requests whose bucket is empty. Store failures let the
// request through.
func Middleware(limiter RateLimiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		onLimited: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				cfg.logger.WarnContext(r.Context(), "rate limiter unavailable",
					logger.Component("ratelimiter"),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if secs := int(result.RetryAfter(cfg.now()).Seconds()); secs > 0 {
					h.Set("Retry-After", strconv.Itoa(secs))
				}
				cfg.logger.WarnContext(r.Context(), "rate limit exceeded",
					logger.Component("ratelimiter"),
					slog.String("path", r.URL.Path),
				)
				cfg.onLimited.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
