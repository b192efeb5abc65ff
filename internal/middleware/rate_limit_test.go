package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/generate", func(c *gin.Context) {
		c.Set(ContextUserID, c.GetHeader("X-User"))
		c.Next()
	}, rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doGenerate(router *gin.Engine, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	req.Header.Set("X-User", user)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRateLimitMiddlewareMemory(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Window: time.Hour, Limit: 2, KeyPrefix: "test"}, zap.NewNop())
	router := rateLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doGenerate(router, "u1").Code)
	rr := doGenerate(router, "u1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	rr = doGenerate(router, "u1")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")

	assert.Equal(t, http.StatusOK, doGenerate(router, "u2").Code, "limits are per user")
}

func TestRateLimitWindowResets(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Window: time.Hour, Limit: 1, KeyPrefix: "test"}, zap.NewNop())
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	router := rateLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doGenerate(router, "u1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGenerate(router, "u1").Code)

	now = now.Add(time.Hour)
	assert.Equal(t, http.StatusOK, doGenerate(router, "u1").Code)
}

func TestRateLimitRequiresUser(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Window: time.Hour, Limit: 1, KeyPrefix: "test"}, zap.NewNop())
	assert.Equal(t, http.StatusUnauthorized, doGenerate(rateLimitedRouter(rl), "").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	rl := NewGenerationRateLimiter(nil, 0, zap.NewNop())
	router := rateLimitedRouter(rl)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGenerate(router, "").Code)
	}
}

func TestRateLimitRedis(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set, skipping redis rate limit test")
	}
	client := redis.NewClient(&redis.Options{Addr: host + ":6379"})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(t.Context()).Err())

	rl := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Minute,
		Limit:     1,
		KeyPrefix: "test:" + t.Name() + ":" + time.Now().Format(time.RFC3339Nano),
	}, zap.NewNop())
	router := rateLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doGenerate(router, "u1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGenerate(router, "u1").Code)
}
