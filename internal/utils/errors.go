package utils

import (
	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is a utility function for consistent error handling across the API
// It ensures error details are only exposed in non-production environments
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string, details ...interface{}) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		status,
		message,
		err,
	)

	var errorDetails interface{}
	if len(details) > 0 {
		errorDetails = details[0]
	} else if err != nil && gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, errorDetails))
}
