package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/metrics"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/trace"
)

// TraceMiddleware propagates or generates the request trace id and echoes it
// back in the response header.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(trace.HeaderName)
		if traceID == "" {
			traceID = trace.GenerateTraceID()
		}
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Writer.Header().Set(trace.HeaderName, traceID)
		c.Next()
	}
}

// MetricsMiddleware records per-route request latency.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
