package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for counter keys
	KeyPrefix string
}

// windowCounter increments the request count stored under key and returns
// the new count. The count expires after ttl.
type windowCounter interface {
	incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimiter counts requests per user in fixed windows. Counts live in
// Redis when a client is given, otherwise in process memory.
type RateLimiter struct {
	counter windowCounter
	config  RateLimitConfig
	log     *zap.Logger
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter instance. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, log *zap.Logger) *RateLimiter {
	var counter windowCounter
	if redisClient != nil {
		counter = &redisCounter{client: redisClient}
	} else {
		counter = newMemoryCounter()
	}
	return &RateLimiter{
		counter: counter,
		config:  config,
		log:     log,
		now:     time.Now,
	}
}

// NewGenerationRateLimiter limits AI generation requests to limit per hour.
func NewGenerationRateLimiter(redisClient *redis.Client, limit int, log *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "rate_limit:generation",
	}, log)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.config.Limit <= 0 {
			c.Next()
			return
		}

		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID)
		if err != nil {
			// Log error but don't fail the request
			rl.log.Warn("rate limit check failed", zap.String("user_id", userID), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"retry_after": int(resetTime.Sub(rl.now()).Seconds()),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request from the given user.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	count, err := rl.counter.incr(ctx, key, rl.config.Window)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	remaining := max(rl.config.Limit-int(count), 0)
	resetTime := windowStart.Add(rl.config.Window)
	return int(count) <= rl.config.Limit, remaining, resetTime, nil
}

type redisCounter struct {
	client *redis.Client
}

func (r *redisCounter) incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	// Use Redis pipeline for atomic operations
	pipe := r.client.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incrCmd.Val(), nil
}

// memoryCounter keeps counts for a single process. Keys embed the window
// start, so entries from past windows are pruned on write.
type memoryCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
	}
}

func (m *memoryCounter) incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for k, exp := range m.expires {
		if now.After(exp) {
			delete(m.counts, k)
			delete(m.expires, k)
		}
	}

	if _, ok := m.expires[key]; !ok {
		m.expires[key] = now.Add(ttl)
	}
	m.counts[key]++
	return m.counts[key], nil
}
