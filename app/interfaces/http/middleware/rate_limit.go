package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

// RateLimiter is implemented by cache.RedisCacheService.
type RateLimiter interface {
	// Allow records one hit on key and reports whether it is within limit
	// for the trailing window, plus the hits left.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
}

// RateLimit throttles each client IP to RATE_LIMIT_PER_MINUTE requests per
// sliding minute. Zero disables it. Limiter failures let the request through.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := environment_variables.EnvironmentVariables.RATE_LIMIT_PER_MINUTE
		if limit <= 0 || limiter == nil {
			c.Next()
			return
		}
		allowed, remaining, err := limiter.Allow(c.Request.Context(), c.ClientIP(), limit, time.Minute)
		if err != nil {
			logger.GetLogger().Warnf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
				Code:  "7b2e9d4f-1a6c-4e8b-9f3d-5c0a8e2b6d41",
				Error: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
