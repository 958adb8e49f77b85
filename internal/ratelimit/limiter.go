// Package ratelimit implements per-key sliding-window admission control.
//
// State is process-local and best-effort: it resets on restart and does not
// coordinate across instances. A distributed deployment would need a shared
// counter store instead.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most `limit` requests per key within the trailing
// `window`. It keeps, per key, the timestamps of recent admitted requests
// and prunes entries older than the window on every call.
type Limiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time

	now func() time.Time // injectable for tests
}

func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records the request and admits it if fewer than limit requests from
// the same key fall within the trailing window. Rejected requests are not
// counted against the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	// Keys are only pruned when revisited, so idle clients would leave one
	// map entry each forever. A full sweep runs at most once per window.
	if l.lastSweep.IsZero() || now.Sub(l.lastSweep) >= l.window {
		for k, ts := range l.hits {
			if k == key {
				continue
			}
			if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
				delete(l.hits, k)
			}
		}
		l.lastSweep = now
	}

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}

// Window returns the configured window, used for Retry-After hints.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Limit returns the configured per-window threshold.
func (l *Limiter) Limit() int {
	return l.limit
}
