package infrastructure

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientRateLimiter keeps one token bucket per client key.
type ClientRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientRateLimiter allows perSecond requests per client with the given
// burst. Buckets idle for idleAfter are dropped on a later call.
func NewClientRateLimiter(perSecond float64, burst int, idleAfter time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients:   make(map[string]*clientBucket),
		limit:     rate.Limit(perSecond),
		burst:     burst,
		idleAfter: idleAfter,
	}
}

// Allow consumes one token of key's bucket if available.
func (rl *ClientRateLimiter) Allow(key string) bool {
	return rl.AllowAt(key, time.Now())
}

func (rl *ClientRateLimiter) AllowAt(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.idleAfter > 0 && now.Sub(rl.lastSweep) >= rl.idleAfter {
		rl.sweep(now)
	}
	b, ok := rl.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// RetryAfter is how long one token takes to refill.
func (rl *ClientRateLimiter) RetryAfter() time.Duration {
	if rl.limit <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / float64(rl.limit))
}

// Clients is the number of tracked buckets.
func (rl *ClientRateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *ClientRateLimiter) sweep(now time.Time) {
	for key, b := range rl.clients {
		if now.Sub(b.lastSeen) > rl.idleAfter {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}
