// Package ratelimit keeps a sliding window of request timestamps per client.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultWindow = 60 * time.Second
	DefaultMax    = 20
)

// Limiter allows at most max requests per client inside any window-long span.
// It owns all of its state; build one per server and pass it where needed.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	window  time.Duration
	max     int
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New returns a Limiter. Non-positive arguments fall back to the defaults.
func New(window time.Duration, max int, opts ...Option) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMax
	}
	l := &Limiter{
		buckets: make(map[string][]time.Time),
		window:  window,
		max:     max,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records a request for clientID and reports whether it is within quota.
// Denied requests are not recorded.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket := trim(l.buckets[clientID], now.Add(-l.window))
	if len(bucket) >= l.max {
		l.buckets[clientID] = bucket
		return false
	}
	l.buckets[clientID] = append(bucket, now)
	return true
}

// Sweep drops clients with no request inside the current window and
// returns how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	removed := 0
	for id, bucket := range l.buckets {
		if len(bucket) == 0 || !bucket[len(bucket)-1].After(cutoff) {
			delete(l.buckets, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked client identities.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// trim removes timestamps at or before cutoff. Buckets are append-only in
// time order, so the kept entries form a suffix.
func trim(bucket []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(bucket) && !bucket[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return bucket
	}
	kept := make([]time.Time, len(bucket)-i)
	copy(kept, bucket[i:])
	return kept
}
