package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// RateLimitConfig holds configuration for a specific rate limit
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	KeyFn  func(*http.Request) string
}

// DefaultRateLimit builds the per-IP limit from security.rate_limiting
func (m *Middleware) DefaultRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Limit:  m.cfg.Security.RateLimiting.DefaultLimit,
		Window: m.cfg.Security.RateLimiting.DefaultWindow,
		KeyFn:  ClientIP,
	}
}

// RateLimit creates a fixed-window rate limiting middleware backed by Redis.
// It is a pass-through when rate limiting is disabled or Redis is not configured,
// and fails open when Redis errors.
func (m *Middleware) RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !m.cfg.Security.RateLimiting.Enabled || m.rdb == nil || cfg.Limit <= 0 {
			return next
		}
		if cfg.Window <= 0 {
			cfg.Window = time.Minute
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + cfg.KeyFn(r)

			count, ttl, err := m.rdb.IncrWindow(r.Context(), key, cfg.Window)
			if err != nil {
				m.log.Error().Err(err).Msg("failed to increment rate limit counter")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, cfg.Limit-int(count))))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

			if int(count) > cfg.Limit {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"message":"Too many requests. Please try again later."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
