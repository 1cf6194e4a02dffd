// Package main provides the entrypoint for the SwellWindow background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/swellapi"
	"github.com/swellwindow/swellwindow/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "swellwindow-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting SwellWindow worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backend client and services
	client := swellapi.NewClient(swellapi.ClientConfig{
		BaseURL: os.Getenv("SWELLAPI_BASE_URL"),
		APIKey:  os.Getenv("SWELLAPI_KEY"),
		Logger:  log,
	})

	cache := recommendation.NewCache(recommendation.DefaultTTL)

	presetService := preset.NewService(preset.ServiceConfig{
		Repo:   client,
		Logger: log,
	})

	recommendationService := recommendation.NewService(recommendation.ServiceConfig{
		Provider: client,
		Presets:  client,
		Cache:    cache,
		Logger:   log,
	})

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:          worker.RefreshConfigFromEnv(),
		Logger:          log,
		Presets:         presetService,
		Recommendations: recommendationService,
		Cache:           cache,
	})

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Pub/Sub message intake, when configured
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if projectID != "" && subscription != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Changes:          recommendationService,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if err := handler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		log.Warn().Msg("PUBSUB_PROJECT_ID or PUBSUB_SUBSCRIPTION not set - running on timer only")
	}

	// Periodic warm-up and sweep
	go func() {
		warmTicker := time.NewTicker(6 * time.Hour)
		defer warmTicker.Stop()
		sweepTicker := time.NewTicker(1 * time.Hour)
		defer sweepTicker.Stop()

		refreshJob.Run(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-warmTicker.C:
				refreshJob.Run(ctx)
			case <-sweepTicker.C:
				refreshJob.SweepExpired(time.Now())
			}
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	recommendationService.Wait()

	log.Info().Msg("worker stopped")
}
