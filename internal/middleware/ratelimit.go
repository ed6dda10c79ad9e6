package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/gin-gonic/gin"
)

// RateLimiter provides fixed-window request limiting per client IP.
type RateLimiter struct {
	requests map[string]*clientInfo
	mu       sync.Mutex
	rate     int
	window   time.Duration
	name     string
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type clientInfo struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window and
// starts its cleanup goroutine. Call Stop to release it.
func NewRateLimiter(rate int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     rate,
		window:   window,
		name:     name,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("rate", rate),
		logger.Duration("window", window),
	)

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := rl.now()
		cleaned := 0
		for ip, info := range rl.requests {
			if now.Sub(info.lastSeen) > rl.window*2 {
				delete(rl.requests, ip)
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

// isAllowed counts a request from ip and reports whether it is within the
// limit, along with the count so far in the current window.
func (rl *RateLimiter) isAllowed(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	info, exists := rl.requests[ip]
	if !exists || now.Sub(info.windowStart) >= rl.window {
		rl.requests[ip] = &clientInfo{count: 1, windowStart: now, lastSeen: now}
		return true, 1
	}

	info.count++
	info.lastSeen = now
	return info.count <= rl.rate, info.count
}

// retryAfter returns whole seconds until ip's window resets, at least 1.
func (rl *RateLimiter) retryAfter(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	info, ok := rl.requests[ip]
	if !ok {
		return 1
	}
	left := rl.window - rl.now().Sub(info.windowStart)
	secs := int(math.Ceil(left.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// RateLimit returns middleware enforcing limiter per client IP.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, count := limiter.isAllowed(ip)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
		if !allowed {
			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("request_count", count),
				logger.Int("limit", limiter.rate),
				logger.Duration("window", limiter.window),
			)

			c.Header("X-RateLimit-Remaining", "0")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), limiter.retryAfter(ip)))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.rate-count))
		c.Next()
	}
}
