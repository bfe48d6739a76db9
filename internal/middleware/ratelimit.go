package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/tempo/internal/apierror"
	"github.com/JonnyWalker81/tempo/internal/logger"
)

// RateLimiter counts requests per key in fixed windows
type RateLimiter struct {
	requests map[string]*clientInfo
	mu       sync.Mutex
	rate     int           // requests per window
	window   time.Duration // time window
	name     string        // identifier for logging
	now      func() time.Time
}

type clientInfo struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window and
// starts a goroutine dropping idle keys.
func NewRateLimiter(rate int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     rate,
		window:   window,
		name:     name,
		now:      time.Now,
	}

	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("rate", rate),
		logger.Duration("window", window),
	)

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		cleaned := 0
		for key, info := range rl.requests {
			if now.Sub(info.windowStart) > rl.window*2 {
				delete(rl.requests, key)
				cleaned++
			}
		}
		remaining := len(rl.requests)
		rl.mu.Unlock()

		if cleaned > 0 {
			logger.Default().Debug("rate limiter cleanup completed",
				logger.String("name", rl.name),
				logger.Int("cleaned", cleaned),
				logger.Int("remaining", remaining),
			)
		}
	}
}

// isAllowed counts a request for key and reports whether it fits the
// current window along with the count so far
func (rl *RateLimiter) isAllowed(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	info, exists := rl.requests[key]
	if !exists || now.Sub(info.windowStart) >= rl.window {
		rl.requests[key] = &clientInfo{count: 1, windowStart: now}
		return true, 1
	}

	info.count++
	return info.count <= rl.rate, info.count
}

// retryAfter is the whole seconds until key's window resets, at least 1
func (rl *RateLimiter) retryAfter(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	info, exists := rl.requests[key]
	if !exists {
		return 1
	}
	left := info.windowStart.Add(rl.window).Sub(rl.now())
	return max(1, int(math.Ceil(left.Seconds())))
}

// RateLimit limits requests per client IP.
// Default: 300 requests per minute for general endpoints
func RateLimit() gin.HandlerFunc {
	limiter := NewRateLimiter(300, time.Minute, "general")
	return rateLimitMiddleware(limiter, func(c *gin.Context) string { return c.ClientIP() })
}

// RateLimitPerUser limits an authenticated route per user, falling back
// to the client IP. Must run after Auth.
func RateLimitPerUser(rate int, window time.Duration, name string) gin.HandlerFunc {
	limiter := NewRateLimiter(rate, window, name)
	return rateLimitMiddleware(limiter, func(c *gin.Context) string {
		if id := c.GetString(UserIDKey); id != "" {
			return "user:" + id
		}
		return "ip:" + c.ClientIP()
	})
}

func rateLimitMiddleware(limiter *RateLimiter, keyOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyOf(c)

		allowed, count := limiter.isAllowed(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, limiter.rate-count)))

		if !allowed {
			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("key", key),
				logger.Int("request_count", count),
				logger.Int("limit", limiter.rate),
				logger.Duration("window", limiter.window),
			)

			apierror.AbortWithProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), limiter.retryAfter(key)))
			return
		}

		c.Next()
	}
}
