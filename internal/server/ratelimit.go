package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter is a per-client token bucket keyed by action.
type rateLimiter struct {
	mu        sync.Mutex
	perMinute map[string]int
	entries   map[string]*limiterEntry
}

func newRateLimiter(perMinute map[string]int) *rateLimiter {
	return &rateLimiter{
		perMinute: perMinute,
		entries:   make(map[string]*limiterEntry),
	}
}

func (l *rateLimiter) Allow(client, action string) bool {
	limit, ok := l.perMinute[action]
	if !ok || limit <= 0 {
		return true
	}
	now := time.Now()
	key := action + "|" + client

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) >= limiterSweepSize {
		l.sweep(now)
	}
	entry, exists := l.entries[key]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(limit)), limit),
		}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *rateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-limiterIdleTTL)
	for key, entry := range l.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}
