package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"NetShield/internal/app"
	"NetShield/internal/config"
	"NetShield/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	err := application.Run(ctx)
	if closeErr := application.Close(); closeErr != nil {
		logger.Warn("shutdown cleanup failed", "error", closeErr)
	}
	if err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
