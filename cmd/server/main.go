package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/realworld-persistence/internal/api"
	"github.com/realworld-persistence/internal/config"
	"github.com/realworld-persistence/internal/service"
	"github.com/realworld-persistence/internal/storage"
	"github.com/realworld-persistence/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(api.ServiceName, "info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(api.ServiceName, cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("backend", cfg.Storage.Backend).Msg("Starting RealWorld ops server...")

	// Open the configured store
	store, err := storage.Open(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}

	// Initialize services
	services := service.NewServices(store, log)

	// Initialize router
	router := api.NewRouter(services, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := store.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close store")
	}

	log.Info().Msg("Server exited gracefully")
}
