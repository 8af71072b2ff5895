package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Idle buckets are
// dropped after expiresIn.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	expiresIn time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter from config
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     cfg.Burst,
		expiresIn: 3 * time.Minute,
		now:       time.Now,
	}
}

// Allow reports whether a request from key may proceed
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.expiresIn {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.expiresIn {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Limit wraps next, answering 429 once the caller's bucket is empty
func (l *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			utils.WriteErrorResponse(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
