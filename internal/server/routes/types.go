package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Options holds the per-route settings the routes are mounted with.
type Options struct {
	ContactPath  string
	ContactLimit middleware.RateLimitConfig
}
