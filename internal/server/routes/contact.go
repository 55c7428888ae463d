package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes mounts the form endpoint. The limiter is created here so
// every call gets its own bucket.
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler, opts Options) {
	router.POST(opts.ContactPath,
		middleware.RateLimitMiddleware(opts.ContactLimit),
		contact.Submit,
	)
}
