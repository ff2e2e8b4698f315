// Package middleware provides the HTTP middleware stack for the
// storefront server.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// limiter counts requests per client over a fixed window. Each
// RateLimit middleware owns its own limiter, so the strict login limit
// and the loose global limit never see each other's counts.
type limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	counts  map[string]int
	resetAt time.Time
}

func newLimiter(max int, window time.Duration) *limiter {
	return &limiter{
		max:     max,
		window:  window,
		counts:  map[string]int{},
		resetAt: time.Now().Add(window),
	}
}

// allow increments the client's count and reports whether it is still
// under the limit. The whole map resets when the window rolls over,
// which also bounds its memory.
func (l *limiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.resetAt) {
		l.counts = map[string]int{}
		l.resetAt = now.Add(l.window)
	}

	l.counts[client]++
	return l.counts[client] <= l.max
}

// RateLimit limits each client IP to max requests per window.
//
//	r.Use(middleware.RateLimit(200, time.Minute))
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !l.allow(ip) {
				http.Error(w, `{"status":429,"message":"Too Many Requests"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
