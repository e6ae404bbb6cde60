package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
)

// Limiter is the subset of ratelimit.FixedWindow this middleware needs.
// Defined here, in the consumer package, so tests can inject a fake.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewRateLimiter returns a middleware that admits requests through the
// limiter keyed by caller address. Wire it after chimiddleware.RealIP so the
// key reflects the client, not the proxy.
//
// A limiter error fails open: the availability check this protects is
// advisory, so losing the counter store briefly must not take the endpoint
// down with it. The error is logged.
func NewRateLimiter(l Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), clientAddr(r))
			if err != nil {
				log.WarnContext(r.Context(), "rate limiter unavailable, admitting request", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{
						"code":    "rate_limited",
						"message": "too many requests",
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr extracts the caller's address without the ephemeral port, so
// consecutive requests from one client count against one window.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
