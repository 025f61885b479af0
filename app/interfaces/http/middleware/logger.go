package middleware

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"pantrypal.app/pantry-api-gateway/app/utils/contextkeys"
)

// credentials must never reach the logs
var redactedRequestHeaders = []string{"Authorization", "Cookie"}

type BodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w BodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b) // capture response
	return w.ResponseWriter.Write(b)
}

func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := context.WithValue(c.Request.Context(), contextkeys.RequestId{}, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)

		var reqBody []byte
		if c.Request.Body != nil {
			reqBody, _ = io.ReadAll(c.Request.Body)
			// Restore body so Gin can read it again
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		blw := &BodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		headers := c.Request.Header.Clone()
		for _, h := range redactedRequestHeaders {
			if headers.Get(h) != "" {
				headers.Set(h, "[redacted]")
			}
		}
		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"host":       c.Request.Host,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"headers":    headers,
			"req_body":   string(reqBody),
			"resp_body":  blw.body.String(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}).Info("")
	}
}
