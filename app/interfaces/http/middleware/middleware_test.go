package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

func TestAllowedOrigin(t *testing.T) {
	allowed := []string{"https://app.pantrypal.app", "*.pantrypal.dev"}

	assert.True(t, allowedOrigin("https://app.pantrypal.app", allowed))
	assert.True(t, allowedOrigin("https://preview-42.pantrypal.dev", allowed))
	assert.False(t, allowedOrigin("https://evil.example", allowed))
	assert.False(t, allowedOrigin("https://app.pantrypal.app.evil.example", allowed))
	assert.False(t, allowedOrigin("", allowed))
	assert.False(t, allowedOrigin("https://app.pantrypal.app", nil))
}

type fakeLimiter struct {
	hits  map[string]int
	err   error
	limit int
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, int, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	f.limit = limit
	f.hits[key]++
	remaining := limit - f.hits[key]
	if remaining < 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}

func withRateLimit(t *testing.T, limit int) {
	previous := environment_variables.EnvironmentVariables.RATE_LIMIT_PER_MINUTE
	environment_variables.EnvironmentVariables.RATE_LIMIT_PER_MINUTE = limit
	t.Cleanup(func() {
		environment_variables.EnvironmentVariables.RATE_LIMIT_PER_MINUTE = previous
	})
}

func rateLimitedRouter(limiter RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRateLimitRejectsAfterLimit(t *testing.T) {
	withRateLimit(t, 2)
	limiter := &fakeLimiter{hits: map[string]int{}}
	router := rateLimitedRouter(limiter)

	first := get(router, "/ping")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, get(router, "/ping").Code)

	third := get(router, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "60", third.Header().Get("Retry-After"))
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitDisabled(t *testing.T) {
	withRateLimit(t, 0)
	limiter := &fakeLimiter{hits: map[string]int{}}
	router := rateLimitedRouter(limiter)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(router, "/ping").Code)
	}
	assert.Empty(t, limiter.hits)
}

func TestRateLimitFailsOpen(t *testing.T) {
	withRateLimit(t, 1)
	router := rateLimitedRouter(&fakeLimiter{err: errors.New("redis down")})

	rec := get(router, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestLoggerRedactsCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()
	router := gin.New()
	router.Use(LoggerMiddleware(logger))
	router.POST("/echo", func(c *gin.Context) {
		raw, err := c.GetRawData()
		require.NoError(t, err)
		c.String(http.StatusOK, string(raw))
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":1}`))
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, `{"a":1}`, rec.Body.String())
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	headers, ok := entry.Data["headers"].(http.Header)
	require.True(t, ok)
	assert.Equal(t, "[redacted]", headers.Get("Authorization"))
	assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
	assert.Equal(t, `{"a":1}`, entry.Data["req_body"])
	assert.Equal(t, `{"a":1}`, entry.Data["resp_body"])
	assert.Equal(t, "req-1", entry.Data["request_id"])
}

func TestLoggerGeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	router := gin.New()
	router.Use(LoggerMiddleware(logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := get(router, "/ping")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	previous := environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS
	environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS = []string{"https://app.pantrypal.app"}
	t.Cleanup(func() { environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS = previous })

	router := gin.New()
	router.Use(CORS())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.pantrypal.app")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.pantrypal.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-RateLimit-Remaining")
}
