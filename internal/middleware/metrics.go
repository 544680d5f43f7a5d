package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"ecity-api/internal/metrics"
)

// Metrics returns a middleware that records HTTP metrics. basePath is the
// prefix the API routes are mounted under.
func Metrics(m *metrics.Metrics, basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics, health and live feed endpoints
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path, basePath) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		endpoint := c.FullPath() // route pattern, not actual path
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
