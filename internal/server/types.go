package server

import (
	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	service *contact.Service
	logger  *logging.Logger
}
