// Package main provides the entrypoint for the GreenWays background worker.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/greenways/greenways/internal/database"
	"github.com/greenways/greenways/internal/directions"
	"github.com/greenways/greenways/internal/directions/googlemaps"
	"github.com/greenways/greenways/internal/provider/resilience"
	"github.com/greenways/greenways/internal/route"
	"github.com/greenways/greenways/internal/worker"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "greenways-worker"

	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().Msg("starting GreenWays worker")

	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	if projectID == "" {
		log.Fatal().Msg("PUBSUB_PROJECT_ID is required")
	}

	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription == "" {
		subscription = "greenways-worker-jobs"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8081"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	monitor := database.NewMonitor(pool, database.DefaultProbeInterval, log)
	monitor.Start(ctx)
	defer monitor.Stop()

	// Directions service used for cache warming
	registry := resilience.NewRegistry()
	mapsClient := googlemaps.NewClient(googlemaps.ClientConfig{
		APIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
		Registry: registry,
		Logger:   log,
	})
	directionsService := directions.NewService(directions.ServiceConfig{
		Provider: mapsClient,
		Logger:   log,
	})

	routeService := route.NewService(route.NewPostgresRepository(pool), monitor, log)

	warmJob := worker.NewWarmJob(worker.WarmJobConfig{
		Pairs:      routeService,
		Directions: directionsService,
		Logger:     log,
	})

	handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        projectID,
		SubscriptionName: subscription,
		WarmJob:          warmJob,
		Store:            monitor,
		Logger:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create pubsub handler")
	}
	defer handler.Close()

	// Health endpoint so the orchestrator can probe the worker.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	// Start receiving messages in a goroutine; Receive blocks until the
	// context is cancelled.
	errCh := make(chan error, 1)
	go func() {
		errCh <- handler.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("shutting down worker")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("pubsub receive error")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
