// internal/gateway/httpapi/middleware.go
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rental-gateway/internal/common/logger"
	"rental-gateway/internal/common/metrics"
	"rental-gateway/internal/common/observability"
)

// RequestID tags every request with an id, honoring one supplied by the
// caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("Request completed", map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"operation":  c.Query("operation"),
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		})
	}
}

// Instrument records per-request metrics on both the Prometheus vectors
// and the OTel instruments.
func Instrument(obs *observability.Observability) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		operation := c.Query("operation")
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start)

		metrics.GatewayRequestsTotal.WithLabelValues(route, operation, status).Inc()
		metrics.GatewayRequestDuration.WithLabelValues(route, operation).Observe(elapsed.Seconds())
		if obs != nil {
			obs.RecordRequest(c.Request.Context(), route, c.Writer.Status())
			obs.RecordRequestDuration(c.Request.Context(), route, elapsed)
		}
	}
}

// SecurityHeaders adds the standard hardening headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// RequestSizeLimiter caps the request body size.
func RequestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// CORS allows the chat widget to call the gateway cross-origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
