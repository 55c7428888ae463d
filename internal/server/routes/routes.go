package routes

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/api/middleware"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// Setup configures all routes
func Setup(router *gin.Engine, h *Handlers, opts Options) {
	logger := logging.GetGlobalLogger()

	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, h.Contact, opts)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.HandleAPIError(c, nil, http.StatusMethodNotAllowed, common.ErrCodeMethodNotAllowed, "Method not allowed")
	})
	router.NoRoute(func(c *gin.Context) {
		utils.HandleAPIError(c, nil, http.StatusNotFound, common.ErrCodeNotFound, "Not found")
	})

	logger.Debug("Routes set up, contact form at POST %s", opts.ContactPath)
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, maxBodyBytes int64) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.LimitRequestBody(maxBodyBytes))
}
