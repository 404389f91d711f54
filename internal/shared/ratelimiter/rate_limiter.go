// Package ratelimiter throttles repeated operations per client key.
package ratelimiter

import (
	"sync"
	"time"
)

// AttemptLimiterInterface limits how often a keyed operation may run.
type AttemptLimiterInterface interface {
	Allow(key string) bool
}

// AttemptLimiter counts attempts per key in fixed windows. It backs the login
// throttle: keys are client IPs and the window resets after the interval.
type AttemptLimiter struct {
	limit    int           // attempts allowed per window
	interval time.Duration // window length

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	started time.Time
}

// NewAttemptLimiter creates a limiter allowing limit attempts per interval per key.
func NewAttemptLimiter(limit int, interval time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
// A window that has run its full interval resets before counting.
func (l *AttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.started) >= l.interval {
		l.windows[key] = &window{count: 1, started: now}
		return true
	}

	w.count++
	return w.count <= l.limit
}
