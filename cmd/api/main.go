package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nutrilife-landing/internal/app"
	"nutrilife-landing/internal/config"
	"nutrilife-landing/pkg/logger"
	"nutrilife-landing/pkg/validator"
)

func main() {
	logger.Init()
	logger.Info("Starting NutriLife landing site", nil)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables", nil)
	}

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		logger.Error(err, "Invalid configuration", nil)
		os.Exit(1)
	}
	validator.Init()

	application, err := app.New(cfg, app.Options{})
	if err != nil {
		logger.Error(err, "Failed to initialize application", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "Failed to start server", nil)
			serverErr <- err
		}
	}()

	// Wait for either interrupt signal or server error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		logger.Error(err, "Server error occurred, initiating shutdown", nil)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "Server forced to shutdown", nil)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully", nil)
}
