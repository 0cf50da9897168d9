package middleware

import (
	"context"
	"sync"
	"time"
)

// FailureRateLimiter counts failed attempts per key (client IP) inside a
// fixed window. Used for login failures.
type FailureRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	limit    int
	window   time.Duration
	now      func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

func NewFailureRateLimiter(limit int, window time.Duration) *FailureRateLimiter {
	return &FailureRateLimiter{
		attempts: make(map[string]*attemptInfo),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (r *FailureRateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	info, exists := r.attempts[key]
	if !exists || now.Sub(info.firstAt) > r.window {
		r.attempts[key] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= r.limit {
		return false
	}
	info.count++
	return true
}

// Blocked reports whether key has used up its attempts without recording one.
func (r *FailureRateLimiter) Blocked(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.attempts[key]
	if !exists || r.now().Sub(info.firstAt) > r.window {
		return false
	}
	return info.count >= r.limit
}

// Cleanup drops expired windows every interval until ctx is canceled.
func (r *FailureRateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := r.now()
			for key, info := range r.attempts {
				if now.Sub(info.firstAt) > r.window {
					delete(r.attempts, key)
				}
			}
			r.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}
