// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/dto"
)

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter throttles requests per client IP and route parameter. It
// guards the manual rate refresh so clients cannot hammer the rate source.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
	keyParam       string
	now            func() time.Time
	lastPrune      time.Time
}

// NewRateLimiterWithConfig creates a new rate limiter.
// When keyParam is set, each value of that path parameter gets its own budget.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration, keyParam string) *RateLimiter {
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		keyParam:       keyParam,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode
		if os.Getenv("E2E_MODE") == "true" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}
		if rl.keyParam != "" {
			key += "|" + c.Param(rl.keyParam)
		}

		if !rl.allow(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRefreshThrottled),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given key should be allowed.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastPrune) >= rl.windowDuration {
		rl.prune(now)
		rl.lastPrune = now
	}

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}

	return false
}

// prune removes expired entries. The caller must hold rl.mu.
func (rl *RateLimiter) prune(now time.Time) {
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
