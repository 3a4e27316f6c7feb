package middleware

import (
	"fmt"
	"net"
	"net/http"

	apperrors "pizzagraph/pkg/errors"
	"pizzagraph/pkg/observability"
	"pizzagraph/pkg/ratelimit"

	"go.uber.org/zap"
)

// RateLimitConfig configures the rate limiting middleware
type RateLimitConfig struct {
	Limiter ratelimit.RateLimiter
	// KeyFunc picks the bucket for a request; nil shares one bucket
	KeyFunc      func(r *http.Request) string
	ErrorHandler *apperrors.ErrorHandler
	Collector    *observability.Collector
	Logger       *zap.Logger
}

// RateLimit rejects requests over the configured rate with 429
func RateLimit(cfg RateLimitConfig) func(next http.Handler) http.Handler {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(*http.Request) string { return ratelimit.GlobalKey }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := fmt.Sprintf("%g", cfg.Limiter.Limit())
	burst := fmt.Sprintf("%d", cfg.Limiter.Burst())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := cfg.Limiter.Allow(r.Context(), keyFunc(r))
			if err != nil {
				// limiter failures let the request through
				logger.Warn("Rate limiter error", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Burst", burst)

			if !allowed {
				if cfg.Collector != nil {
					cfg.Collector.RateLimited.Inc()
				}
				w.Header().Set("Retry-After", "1")
				cfg.ErrorHandler.Handle(w, r, apperrors.NewRateLimitError(cfg.Limiter.Limit(), "second"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIPKey buckets requests by remote address. Run it behind RealIP so the
// forwarded client address is used.
func ClientIPKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
