package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/csrf"
)

// RateLimiter counts requests per client IP in fixed windows.
type RateLimiter struct {
	limit  int
	window time.Duration
	mu     sync.Mutex
	seen   map[string]*clientWindow
}

type clientWindow struct {
	start time.Time
	count int
}

// NewRateLimiter allows up to limit requests per window per client.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string]*clientWindow),
	}
	go rl.sweep()
	return rl
}

// sweep drops clients idle for over five minutes so the map stays bounded.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		for host, cw := range rl.seen {
			if time.Since(cw.start) > 5*time.Minute {
				delete(rl.seen, host)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether another request from addr fits in the current
// window. The port is stripped so one client is one bucket.
func (rl *RateLimiter) Allow(addr string) bool {
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.seen[host]
	if !ok || now.Sub(cw.start) >= rl.window {
		rl.seen[host] = &clientWindow{start: now, count: 1}
		return true
	}
	if cw.count >= rl.limit {
		slog.Warn("rate_limited", "ip", host)
		return false
	}
	cw.count++
	return true
}

// RateLimit returns middleware that rejects over-limit clients with 429.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.RemoteAddr) {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds OWASP recommended headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Posters are served from /uploads/ on the same origin, so
		// img-src 'self' covers them.
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self'; script-src 'self'; connect-src 'self'")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// CSRF returns a handler that protects form submissions against CSRF.
// It assumes a 32-byte key.
func CSRF(authKey []byte, trustedOrigins []string) func(http.Handler) http.Handler {
	return csrf.Protect(
		authKey,
		csrf.Secure(SecureCookies),
		csrf.Path("/"),
		csrf.TrustedOrigins(trustedOrigins),
	)
}

// Chain applies middlewares in order (outer to inner).
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
