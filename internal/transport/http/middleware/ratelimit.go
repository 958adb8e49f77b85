package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexcarden/qrgen/internal/domain"
	"github.com/alexcarden/qrgen/internal/ratelimit"
)

// RateLimit rejects requests over the limiter's per-window threshold with a
// 429 and a Retry-After hint. Requests are keyed by client IP; behind a
// proxy that means the leftmost X-Forwarded-For entry, which chi's RealIP
// middleware has already folded into RemoteAddr.
func RateLimit(l *ratelimit.Limiter, scope string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(l.Window().Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", retryAfter)
				writeErr(w, r, domain.ErrRateLimited(scope))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
