// ABOUTME: Tests for the exponential backoff helper
// ABOUTME: Validates growth, bounds, jitter, and degenerate attempts
package util

import (
	"testing"
	"time"
)

func TestBackoffZeroAndNegativeAttempts(t *testing.T) {
	for _, attempt := range []int{0, -1, -100} {
		if d := Backoff(time.Second, attempt); d != 0 {
			t.Errorf("Backoff(1s, %d) = %v, want 0", attempt, d)
		}
	}
}

func TestBackoffTinyBase(t *testing.T) {
	// Bases too small to jitter must still return without panicking.
	for _, base := range []time.Duration{0, time.Nanosecond} {
		for attempt := 1; attempt <= 3; attempt++ {
			got := Backoff(base, attempt)
			if got < 0 || got > time.Microsecond {
				t.Errorf("Backoff(%v, %d) = %v, want a tiny non-negative delay", base, attempt, got)
			}
		}
	}
}

func TestBackoffExponentialGrowth(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expected := base * time.Duration(1<<uint(attempt))
		lo := expected * 3 / 4
		hi := expected * 5 / 4

		got := Backoff(base, attempt)
		if got < lo || got > hi {
			t.Errorf("attempt %d: Backoff = %v, want between %v and %v", attempt, got, lo, hi)
		}
	}
}

func TestBackoffCap(t *testing.T) {
	// 2^10 * 1s would be 1024s without the cap; 100 would overflow the shift.
	for _, attempt := range []int{10, 100} {
		got := Backoff(time.Second, attempt)
		if got > 37500*time.Millisecond {
			t.Errorf("attempt %d: Backoff = %v, want <= 30s + 25%% jitter", attempt, got)
		}
		if got < 0 {
			t.Errorf("attempt %d: Backoff = %v, must not be negative", attempt, got)
		}
	}
}

func TestBackoffJitterVaries(t *testing.T) {
	base := time.Second
	first := Backoff(base, 2)
	varied := false
	for i := 0; i < 100; i++ {
		got := Backoff(base, 2)
		if got != first {
			varied = true
		}
		if got < 3*time.Second || got > 5*time.Second {
			t.Errorf("Backoff = %v, want within 4s ± 25%%", got)
		}
	}
	if !varied {
		t.Error("jitter produced 100 identical samples")
	}
}
