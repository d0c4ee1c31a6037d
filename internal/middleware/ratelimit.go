package middleware

import (
	"cmp"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgo/delve/internal/model"
)

// RateLimitConfig tunes RateLimiter. Zero fields fall back to 100 requests
// per minute with 20 extra in a burst, and a sweep every 5 minutes.
type RateLimitConfig struct {
	Rate    int
	Window  time.Duration
	Burst   int
	Cleanup time.Duration
}

// RateLimiter hands each client a bucket of Rate+Burst tokens that refills
// at Rate tokens per Window.
type RateLimiter struct {
	*janitor

	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	burst   int
	now     func() time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    cmp.Or(cfg.Rate, 100),
		window:  cmp.Or(cfg.Window, time.Minute),
		burst:   cmp.Or(cfg.Burst, 20),
		now:     time.Now,
	}
	rl.janitor = startJanitor(cmp.Or(cfg.Cleanup, 5*time.Minute), rl.evictIdle)
	return rl
}

// evictIdle forgets clients quiet for two windows; their buckets would be
// full again anyway.
func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	horizon := rl.now().Add(-2 * rl.window)
	for client, b := range rl.buckets {
		if b.lastSeen.Before(horizon) {
			delete(rl.buckets, client)
		}
	}
}

// Allow takes a token from client's bucket. When the bucket is empty, reset
// is when the next token lands.
func (rl *RateLimiter) Allow(client string) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	full := float64(rl.rate + rl.burst)

	b := rl.buckets[client]
	if b == nil {
		b = &bucket{tokens: full, lastSeen: now}
		rl.buckets[client] = b
	}

	refill := float64(rl.rate) * now.Sub(b.lastSeen).Seconds() / rl.window.Seconds()
	b.tokens = min(full, b.tokens+refill)
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), now.Add(rl.window)
	}

	tokenEvery := float64(rl.window) / float64(rl.rate)
	return false, 0, now.Add(time.Duration((1 - b.tokens) * tokenEvery))
}

// clientKey is the caller's remote IP without the port.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit rejects callers that have drained their bucket with a 429 and a
// Retry-After hint. Every response carries the X-RateLimit-* headers.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, reset := limiter.Allow(clientKey(r))

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			wait := max(1, int(time.Until(reset).Seconds()))
			h.Set("Retry-After", strconv.Itoa(wait))
			model.NewRateLimitError(wait).WriteJSON(w)
		})
	}
}
