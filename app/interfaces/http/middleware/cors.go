package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/config"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

const (
	corsAllowHeaders  = "Content-Type, Content-Length, Accept-Encoding, Authorization, Email, accept, origin, Cache-Control, X-Requested-With, X-Request-Id"
	corsExposeHeaders = "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After"
)

// allowedOrigin matches host against ALLOWED_CORS_HOSTS. Entries starting
// with * match by suffix.
func allowedOrigin(host string, allowed []string) bool {
	if host == "" {
		return false
	}
	for _, allowedHost := range allowed {
		if strings.HasPrefix(allowedHost, "*") {
			if strings.HasSuffix(host, strings.TrimPrefix(allowedHost, "*")) {
				return true
			}
			continue
		}
		if allowedHost == host {
			return true
		}
	}
	return false
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Header.Get("Origin")
		if allowedOrigin(host, environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS) || (config.IsDev() && host != "") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", host)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)
			c.Writer.Header().Set("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
