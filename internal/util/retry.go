// ABOUTME: Retry helpers for provider calls with exponential backoff
// ABOUTME: Used by the OpenAI client between embedding/completion attempts
package util

import (
	"math/rand/v2"
	"time"
)

// Backoff returns the delay before the given retry attempt: exponential in
// the attempt number, capped at 30 seconds, with ±25% jitter.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30 // keep the shift below from overflowing
	}
	delay := base * time.Duration(1<<uint(attempt))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	// A sub-2ns delay leaves no room for jitter; rand.Int64N(0) would panic.
	half := int64(delay) / 2
	if half <= 0 {
		return delay
	}
	jitter := time.Duration(rand.Int64N(half)) - delay/4
	return delay + jitter
}
