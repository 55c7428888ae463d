package middleware

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// LimitRequestBody rejects bodies larger than maxBytes. Declared lengths are
// rejected up front; undeclared ones fail when the handler reads past the cap.
func LimitRequestBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(
				common.ErrCodeTooLarge,
				"Request body too large",
				nil,
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
