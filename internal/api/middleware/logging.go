package middleware

import (
	"time"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger is a middleware that logs request information.
// Lines are only written when the logger has request logging enabled.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.GetString(constants.ContextKeyRequestID),
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
