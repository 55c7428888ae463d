package utils

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleRedirect sends the client on to location after a form post
func HandleRedirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
