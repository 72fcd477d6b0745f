package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsBurstThenDenies(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d should pass", i)
	}
	assert.False(t, rl.allow("10.0.0.1"))

	// A different key has its own bucket.
	assert.True(t, rl.allow("10.0.0.2"))
}

func TestRateLimiterCleanupDropsIdleKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()

	rl.allow("10.0.0.1")
	rl.cleanup(0)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.limiters)
}
