package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"
	"github.com/osa911/contactrelay/internal/server"
	"github.com/osa911/contactrelay/internal/telemetry"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if err := logging.InitLogger(cfg.LogConfig()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger := logging.GetGlobalLogger()
			defer logger.Close()

			logger.Info("Starting server in %s mode", cfg.Environment)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdownTracing, err := telemetry.Setup(ctx, cfg.TelemetryConfig())
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdownTracing(context.Background()); err != nil {
					logger.Warn("Failed to flush traces: %v", err)
				}
			}()

			sender, err := mail.New(cfg.MailOptions(), logger)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(cfg, sender, logger)
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}
}
