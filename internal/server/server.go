package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/api/middleware"
	"github.com/osa911/contactrelay/internal/api/validation"
	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"
	"github.com/osa911/contactrelay/internal/server/routes"
	"github.com/osa911/contactrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewServer creates a new server instance relaying through sender
func NewServer(cfg *config.Config, sender mail.Sender, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	service, err := contact.NewService(cfg.ContactSettings(), sender, logger)
	if err != nil {
		return nil, err
	}

	validation.RegisterWithGin()

	// Create a new engine without default middleware
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	if cfg.TelemetryConfig().Enabled() {
		router.Use(otelgin.Middleware(telemetry.ServiceName))
	}
	routes.SetupGlobalMiddleware(router, logger, cfg.MaxBodyBytes)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(service),
		Health:  handlers.NewHealthHandler(service),
	}
	routes.Setup(router, h, routes.Options{
		ContactPath: cfg.Contact.Path,
		ContactLimit: middleware.RateLimitConfig{
			RPS:   cfg.Contact.RateRPS,
			Burst: cfg.Contact.RateBurst,
		},
	})

	return &Server{
		router:  router,
		cfg:     cfg,
		service: service,
		logger:  logger,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Service returns the contact service the routes relay through.
func (s *Server) Service() *contact.Service {
	return s.service
}

// Start listens on the configured port until ctx is cancelled, then drains
// in-flight requests for up to ShutdownTimeout.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s, contact form at POST %s via %s", srv.Addr, s.cfg.Contact.Path, s.service.Transport())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
