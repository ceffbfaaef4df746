package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterBurstAndRefill(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New().WithClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4", 3, 1) {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("1.2.3.4", 3, 1) {
		t.Fatalf("bucket should be empty")
	}
	if !l.Allow("5.6.7.8", 3, 1) {
		t.Fatalf("other client has its own bucket")
	}

	now = now.Add(time.Second)
	if !l.Allow("1.2.3.4", 3, 1) {
		t.Fatalf("one token should have refilled")
	}
}

func TestLimiterSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New().WithClock(func() time.Time { return now })
	l.Allow("a", 1, 1)
	now = now.Add(time.Hour)
	l.Allow("b", 1, 1)

	if n := l.Sweep(10 * time.Minute); n != 1 {
		t.Fatalf("expected 1 swept, got %d", n)
	}
}
