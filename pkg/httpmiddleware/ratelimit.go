package httpmiddleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimitConfig controls the per-client fixed-window rate limiter.
type RateLimitConfig struct {
	// Max is the number of requests allowed per window. Zero disables limiting.
	Max int
	// Window is the window duration.
	Window time.Duration
}

// clientWindow tracks one client's request count in the current window.
type clientWindow struct {
	count   int
	resetAt time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	cfg     RateLimitConfig
}

// allow records a request for the client and reports whether it fits in the
// current window.
func (l *rateLimiter) allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[client]
	if !ok || now.After(w.resetAt) {
		l.clients[client] = &clientWindow{count: 1, resetAt: now.Add(l.cfg.Window)}
		return true
	}

	w.count++
	return w.count <= l.cfg.Max
}

// cleanup drops expired windows so idle clients do not accumulate.
func (l *rateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for client, w := range l.clients {
		if now.After(w.resetAt) {
			delete(l.clients, client)
		}
	}
}

// RateLimitWithCleanup returns a middleware limiting each client IP to
// cfg.Max requests per cfg.Window, answering 429 beyond that. A background
// goroutine evicts expired client windows until ctx is cancelled.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	if cfg.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	l := &rateLimiter{
		clients: make(map[string]*clientWindow),
		cfg:     cfg,
	}

	go func() {
		ticker := time.NewTicker(cfg.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.cleanup(now)
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)
			if !l.allow(client, time.Now()) {
				// Retry-After takes delta-seconds, not a duration string.
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(cfg.Window.Seconds()))))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the remote host without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
