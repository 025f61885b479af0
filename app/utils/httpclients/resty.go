package httpclients

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"pantrypal.app/pantry-api-gateway/app/utils/contextkeys"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config"
	"resty.dev/v3"
)

var redactedHeaders = []string{"Authorization", "X-Api-Key"}

func NewClient(clientName string) *resty.Client {
	return instrument(resty.New(), clientName)
}

// NewClientWithTransport is used by clients that need a custom round tripper
// such as an HTTP/2-only transport.
func NewClientWithTransport(clientName string, transport http.RoundTripper) *resty.Client {
	return instrument(resty.NewWithClient(&http.Client{Transport: transport}), clientName)
}

func instrument(client *resty.Client, clientName string) *resty.Client {
	client.SetHeader("User-Agent", config.UserAgent())
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		start := time.Now()
		ctx := context.WithValue(r.Context(), contextkeys.HttpClientStartsAt{}, start)
		ctx = context.WithValue(ctx, contextkeys.HttpClientRequestBody{}, r.Body)
		r.SetContext(ctx)
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		logger := logger.GetLogger()
		requestID := r.Request.Context().Value(contextkeys.RequestId{})
		startTime, _ := r.Request.Context().Value(contextkeys.HttpClientStartsAt{}).(time.Time)
		latency := time.Since(startTime)
		fields := logrus.Fields{
			"request_id": requestID,
			"client":     clientName,
			"status":     r.StatusCode(),
			"latency":    latency.String(),
		}
		if raw := r.Request.RawRequest; raw != nil {
			headers := raw.Header.Clone()
			for _, h := range redactedHeaders {
				if headers.Get(h) != "" {
					headers.Set(h, "[redacted]")
				}
			}
			fields["method"] = raw.Method
			fields["path"] = raw.URL.Path
			fields["query"] = raw.URL.RawQuery
			fields["headers"] = headers
		}
		logger.WithFields(fields).Info("")
		return nil
	})
	return client
}
