// Package middleware holds the gin middleware shared by all routes.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"minioj/pkg/utils/contextkey"
)

const (
	traceIDHeader   = "X-Trace-Id"
	requestIDHeader = "X-Request-Id"
)

// Trace ensures each request has a trace ID for logs and responses.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := strings.TrimSpace(c.GetHeader(traceIDHeader))
		if traceID == "" {
			traceID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), contextkey.TraceID, traceID)
		c.Writer.Header().Set(traceIDHeader, traceID)

		if requestID := strings.TrimSpace(c.GetHeader(requestIDHeader)); requestID != "" {
			ctx = context.WithValue(ctx, contextkey.RequestID, requestID)
			c.Writer.Header().Set(requestIDHeader, requestID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
