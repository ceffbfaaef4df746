package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	last       time.Time
}

// Limiter is a per-key token bucket.
type Limiter struct {
	mu  sync.Mutex
	m   map[string]*bucket
	now func() time.Time
}

func New() *Limiter { return &Limiter{m: make(map[string]*bucket), now: time.Now} }

// WithClock replaces the time source; used by tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, refillRate: refillPerSec, last: now}
		l.m[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * b.refillRate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Sweep drops buckets idle for longer than idle, returning how many were removed.
func (l *Limiter) Sweep(idle time.Duration) int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for key, b := range l.m {
		if now.Sub(b.last) > idle {
			delete(l.m, key)
			n++
		}
	}
	return n
}
