package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/handleart/server/internal/config"
	"codeberg.org/handleart/server/internal/logger"
)

// @title Handle Art API
// @version 1.0
// @description AI-powered satirical portrait generation for X accounts
// @description
// @description Features:
// @description - Search-augmented account analysis into an image prompt
// @description - Tiered image generation with a rolling premium quota
// @description - One-shot sanitized retry on content-safety rejections
// @description - Roast letter and behavioral profile report variants

// @host handleart.dev

func main() {
	logger.Info("starting handleart server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// create server with all dependencies
	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	// get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // image generation holds the response open
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// close stores
	srv.ledgerStore.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown

	if srv.cacheStore != nil {
		srv.cacheStore.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if srv.redisClient != nil {
		srv.redisClient.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if srv.db != nil {
		srv.db.Close()
	}

	logger.Info("server stopped")
}
