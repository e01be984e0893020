package dsprobe

import (
	"sync"
	"time"
)

// RateLimiter suppresses repeated operations for a key until a minimum
// interval has passed. Used to keep reconnect loops from flooding the log.
type RateLimiter struct {
	mu          sync.Mutex
	lastSeen    map[string]time.Time
	minInterval time.Duration
}

// NewRateLimiter creates a rate limiter with the given minimum interval
// between operations sharing a key.
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		lastSeen:    make(map[string]time.Time),
		minInterval: minInterval,
	}
}

// Allow reports whether an operation with the given key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	last, ok := rl.lastSeen[key]
	if !ok || now.Sub(last) >= rl.minInterval {
		rl.lastSeen[key] = now
		return true
	}
	return false
}

// Reset clears the recorded time for a key.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.lastSeen, key)
}

// Global rate limiter backing the *RL log helpers.
var LogRateLimiter = NewRateLimiter(30 * time.Second)

// LogERL logs an error message, rate limited per key.
func LogERL(key string, format string, args ...interface{}) {
	if LogRateLimiter.Allow(key) {
		LogE(format, args...)
	}
}

// LogWRL logs a warning message, rate limited per key.
func LogWRL(key string, format string, args ...interface{}) {
	if LogRateLimiter.Allow(key) {
		LogW(format, args...)
	}
}

// LogIRL logs an info message, rate limited per key.
func LogIRL(key string, format string, args ...interface{}) {
	if LogRateLimiter.Allow(key) {
		LogI(format, args...)
	}
}
