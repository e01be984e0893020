package dsprobe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("FirstAllowed", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute)
		assert.True(t, rl.Allow("retry-db1"))
	})

	t.Run("RepeatSuppressed", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute)
		assert.True(t, rl.Allow("retry-db1"))
		assert.False(t, rl.Allow("retry-db1"))
	})

	t.Run("KeysIndependent", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute)
		assert.True(t, rl.Allow("retry-db1"))
		assert.True(t, rl.Allow("retry-db2"))
	})

	t.Run("AllowedAfterInterval", func(t *testing.T) {
		rl := NewRateLimiter(10 * time.Millisecond)
		assert.True(t, rl.Allow("key"))
		assert.False(t, rl.Allow("key"))

		time.Sleep(15 * time.Millisecond)
		assert.True(t, rl.Allow("key"))
	})

	t.Run("Reset", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute)
		assert.True(t, rl.Allow("key"))
		rl.Reset("key")
		assert.True(t, rl.Allow("key"))
	})
}
