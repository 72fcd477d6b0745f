package middleware

import (
	"sync"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token-bucket limiter per client IP. The OTP and
// password-reset request endpoints share one RateLimiter instance each so
// a single client cannot mint codes faster than the configured window
// allows.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter allows perWindow requests per window for each key and
// starts a background sweep of idle entries.
func NewRateLimiter(perWindow int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:    rate.Limit(float64(perWindow) / window.Seconds()),
		burst:    perWindow,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop(window)
	return rl
}

func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !rl.allow(key) {
			logger.Warn("rate limit exceeded",
				"client_ip", key,
				"path", c.Request.URL.Path,
			)
			appErr := apperrors.ErrRateLimited
			c.AbortWithStatusJSON(appErr.HTTPCode, gin.H{"error": appErr})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, exists := rl.limiters[key]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(interval * 2)
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup(ttl time.Duration) {
	now := time.Now()
	removed := 0
	rl.mu.Lock()
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, key)
			removed++
		}
	}
	rl.mu.Unlock()

	if removed > 0 {
		logger.Debug("rate limiter swept idle entries", "removed", removed)
	}
}
