package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter counts failures per key inside a sliding window.
type attemptLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) blocked(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.activeLocked(key, now)) >= limiter.limit
}

func (limiter *attemptLimiter) recordFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.failures[key] = append(limiter.activeLocked(key, now), now)
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	delete(limiter.failures, key)
}

// activeLocked drops failures older than the window and forgets keys left empty.
func (limiter *attemptLimiter) activeLocked(key string, now time.Time) []time.Time {
	threshold := now.Add(-limiter.window)
	recorded := limiter.failures[key]
	kept := recorded[:0]
	for _, at := range recorded {
		if at.After(threshold) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = kept
	return kept
}

func (limiter *attemptLimiter) trackedKeys() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.failures)
}

func clientAddressKey(c *fiber.Ctx) string {
	if address := strings.TrimSpace(c.IP()); address != "" {
		return address
	}
	return "unknown"
}

func loginLimiterKey(c *fiber.Ctx, username string) string {
	return clientAddressKey(c) + "|" + strings.ToLower(strings.TrimSpace(username))
}
