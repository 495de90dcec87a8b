// Package ratelimit implements a sliding-window limiter whose history lives in
// a caller-owned Store instead of package state.
package ratelimit

import "time"

// Store maps an identifier to the times of its recent allowed requests.
type Store map[string][]time.Time

type Limiter struct {
	Max    int
	Window time.Duration
}

func New(max int, window time.Duration) Limiter {
	return Limiter{Max: max, Window: window}
}

// Allow reports whether id may make another request at now, and records it if
// so. Entries older than the window are pruned.
func (l Limiter) Allow(store Store, id string, now time.Time) bool {
	if store == nil || l.Max < 1 {
		return false
	}
	recent := l.prune(store[id], now)
	if len(recent) >= l.Max {
		store[id] = recent
		return false
	}
	store[id] = append(recent, now)
	return true
}

// RetryAfter returns how long id must wait before Allow would succeed.
func (l Limiter) RetryAfter(store Store, id string, now time.Time) time.Duration {
	recent := l.prune(store[id], now)
	if len(recent) < l.Max || len(recent) == 0 {
		return 0
	}
	wait := recent[0].Add(l.Window).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

func (l Limiter) prune(times []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.Window)
	out := times[:0:0]
	for _, ts := range times {
		if ts.After(cutoff) {
			out = append(out, ts)
		}
	}
	return out
}
