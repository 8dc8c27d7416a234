package middleware

import (
	"time"

	"github.com/ReshmithaBathala/bookingbackend/util/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per registered route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
