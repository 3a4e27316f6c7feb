// Package ratelimit provides request rate limiting keyed by client or
// shared across all clients.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// GlobalKey is the key used when every request shares one bucket
const GlobalKey = "global"

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	// Limit is the sustained rate in requests per second
	Limit() float64
	Burst() int
}

var _ RateLimiter = (*TokenBucketLimiter)(nil)

// TokenBucketLimiter implements token bucket rate limiting with one bucket
// per key
type TokenBucketLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	limit       rate.Limit
	burst       int
	idleTTL     time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewTokenBucketLimiter creates a limiter allowing perSecond requests per key
// with the given burst. A burst below one is raised to the ceiling of
// perSecond so a positive rate always admits traffic.
func NewTokenBucketLimiter(perSecond float64, burst int) *TokenBucketLimiter {
	if burst < 1 {
		burst = int(perSecond)
		if float64(burst) < perSecond {
			burst++
		}
		if burst < 1 {
			burst = 1
		}
	}
	return &TokenBucketLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: time.Hour,
		now:     time.Now,
	}
}

// Limit returns the sustained rate in requests per second
func (l *TokenBucketLimiter) Limit() float64 {
	return float64(l.limit)
}

// Burst returns the bucket size
func (l *TokenBucketLimiter) Burst() int {
	return l.burst
}

// Allow checks if a request is allowed
func (l *TokenBucketLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	now := l.now()
	l.cleanup(now)

	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1), nil
}

// cleanup removes idle buckets at most once per idleTTL; callers hold mu
func (l *TokenBucketLimiter) cleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.idleTTL {
		return
	}
	l.lastCleanup = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
}
