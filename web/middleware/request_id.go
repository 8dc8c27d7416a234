package middleware

import (
	"time"

	"github.com/ReshmithaBathala/bookingbackend/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIdHeader = "X-Request-ID"
	RequestIdKey    = "request_id"
)

// RequestID propagates a valid client request id or mints one, and logs the
// request once it completes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIdKey, id)
		c.Header(RequestIdHeader, id)

		start := time.Now()
		c.Next()

		logger.Debugf("[%s] %s %s -> %d (%s)", id, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
