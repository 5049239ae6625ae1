package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"taskboard/internal/adapter/telemetry"
)

// RateLimitRule is a fixed-window limit applied to one endpoint.
type RateLimitRule struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter enforces per-endpoint fixed-window limits backed by an
// in-process cache. Unknown endpoints fall back to the "default" rule.
type RateLimiter struct {
	cache   *cache.Cache
	rules   map[string]RateLimitRule
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.Mutex
}

func NewRateLimiter(logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	rules := map[string]RateLimitRule{
		"POST /users": {
			Requests: 5,
			Window:   time.Minute,
			KeyFunc:  clientIP,
		},
		"POST /users/login": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  clientIP,
		},
		"GET /tasks": {
			Requests: 100,
			Window:   time.Minute,
			KeyFunc:  userKey,
		},
		"POST /tasks": {
			Requests: 20,
			Window:   time.Minute,
			KeyFunc:  userKey,
		},
		"default": {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  clientIP,
		},
	}

	return &RateLimiter{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		rules:   rules,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		rule, ok := rl.rules[methodPath]
		if !ok {
			rule = rl.rules["default"]
		}

		key := fmt.Sprintf("rate_limit:%s:%s", methodPath, rule.KeyFunc(c))

		allowed, remaining, resetTime := rl.check(key, rule)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rl.metrics.RecordRateLimitHit(path)

			rl.logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", rule.Requests),
				zap.Duration("window", rule.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", rule.Requests, rule.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		rl.metrics.RecordRateLimitAllowed(path)

		c.Next()
	}
}

func (rl *RateLimiter) check(key string, rule RateLimitRule) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if cached, found := rl.cache.Get(key); found {
		entry := cached.(rateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= rule.Requests {
				return false, 0, entry.ResetTime
			}

			entry.Count++
			rl.cache.Set(key, entry, cache.DefaultExpiration)

			return true, rule.Requests - entry.Count, entry.ResetTime
		}
	}

	entry := rateLimitEntry{Count: 1, ResetTime: now.Add(rule.Window)}
	rl.cache.Set(key, entry, rule.Window)

	return true, rule.Requests - 1, entry.ResetTime
}

// SetRule overrides the limit for one endpoint.
func (rl *RateLimiter) SetRule(methodPath string, rule RateLimitRule) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.rules[methodPath] = rule
}

func clientIP(c *gin.Context) string {
	return c.ClientIP()
}

// userKey limits authenticated endpoints per user, falling back to the
// client IP when the request never reached the auth middleware.
func userKey(c *gin.Context) string {
	if userID, exists := c.Get(contextUserIDKey); exists {
		return fmt.Sprintf("user_%v", userID)
	}
	return clientIP(c)
}
