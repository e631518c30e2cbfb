package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/rates/:base/refresh", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func refresh(engine *gin.Engine, base string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rates/"+base+"/refresh", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute, "base")
	engine := newLimitedEngine(rl)

	assert.Equal(t, http.StatusOK, refresh(engine, "USD"))
	assert.Equal(t, http.StatusOK, refresh(engine, "USD"))
	assert.Equal(t, http.StatusTooManyRequests, refresh(engine, "USD"))

	// Each base has its own budget.
	assert.Equal(t, http.StatusOK, refresh(engine, "EUR"))
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute, "")
	var mu sync.Mutex
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	engine := newLimitedEngine(rl)

	assert.Equal(t, http.StatusOK, refresh(engine, "USD"))
	assert.Equal(t, http.StatusTooManyRequests, refresh(engine, "GEL"))

	mu.Lock()
	now = now.Add(time.Minute + time.Second)
	mu.Unlock()

	assert.Equal(t, http.StatusOK, refresh(engine, "USD"))
}

func TestRateLimiter_PrunesExpiredEntries(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute, "")
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1|USD"))
	assert.True(t, rl.allow("10.0.0.2|EUR"))
	assert.False(t, rl.allow("10.0.0.1|USD"))
	assert.Len(t, rl.entries, 2)

	// Entries from clients that never come back are dropped by later traffic.
	now = now.Add(2 * time.Minute)
	assert.True(t, rl.allow("10.0.0.3|GEL"))
	assert.Len(t, rl.entries, 1)
	assert.Contains(t, rl.entries, "10.0.0.3|GEL")
}
