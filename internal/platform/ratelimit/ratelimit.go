// Package ratelimit provides a per-IP token bucket middleware, used on the
// credential endpoints.
package ratelimit

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter tracks one token bucket per client IP.
type Limiter struct {
	ips   map[string]*rate.Limiter
	mu    sync.Mutex
	rate  rate.Limit
	burst int
}

// New builds a Limiter allowing r events per second with the given burst.
func New(r rate.Limit, burst int) *Limiter {
	return &Limiter{
		ips:   make(map[string]*rate.Limiter),
		rate:  r,
		burst: burst,
	}
}

func (l *Limiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.ips[ip]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.rate, l.burst)
	l.ips[ip] = lim
	return lim
}

// Allow reports whether a request from ip may proceed.
func (l *Limiter) Allow(ip string) bool {
	return l.get(ip).Allow()
}

// Middleware rejects over-limit requests with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.Allow(ip) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
