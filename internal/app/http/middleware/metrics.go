package middleware

import (
	"strconv"
	"time"

	"artifolio/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies labelled by the matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		metrics.RequestsInFlight.WithLabelValues(method).Inc()
		start := time.Now()

		c.Next()

		metrics.RequestsInFlight.WithLabelValues(method).Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestsTotal.WithLabelValues(status, method, path).Inc()
		metrics.RequestDuration.WithLabelValues(status, method, path).Observe(time.Since(start).Seconds())
	}
}
