// Package main provides the entrypoint for the SwellWindow API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/swellwindow/swellwindow/internal/api"
	"github.com/swellwindow/swellwindow/internal/api/middleware"
	"github.com/swellwindow/swellwindow/internal/auth"
	"github.com/swellwindow/swellwindow/internal/database"
	"github.com/swellwindow/swellwindow/internal/preference"
	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/snapshot"
	"github.com/swellwindow/swellwindow/internal/spot"
	"github.com/swellwindow/swellwindow/internal/swellapi"
	"github.com/swellwindow/swellwindow/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "swellwindow-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting SwellWindow API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version)

	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Initialize the backend client
	apiKey := os.Getenv("SWELLAPI_KEY")
	if apiKey == "" {
		log.Warn().Msg("SWELLAPI_KEY not set - backend calls will be rejected")
	}

	client := swellapi.NewClient(swellapi.ClientConfig{
		BaseURL: os.Getenv("SWELLAPI_BASE_URL"),
		APIKey:  apiKey,
		Logger:  log,
	})
	log.Info().Msg("backend client initialized")

	// Recommendation cache shared by the services
	cache := recommendation.NewCache(recommendation.DefaultTTL)

	spotService := spot.NewService(spot.ServiceConfig{
		Repo:   client,
		Logger: log,
	})

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

	preferenceService := preference.NewService(preference.ServiceConfig{
		Repo:     client.PreferenceRepository(),
		Listener: recommendationService,
		Logger:   log,
	})
	log.Info().Msg("domain services initialized")

	// Snapshot storage: Postgres when configured, in-memory otherwise
	var snapshotRepo snapshot.Repository
	if os.Getenv("DB_HOST") != "" {
		dbConfig := database.ConfigFromEnv()
		pool, dbErr := database.Connect(ctx, dbConfig)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		snapshotRepo = snapshot.NewPostgresRepository(pool)
	} else {
		log.Warn().Msg("DB_HOST not set - snapshots are stored in memory")
		snapshotRepo = snapshot.NewInMemoryRepository()
	}

	snapshotService := snapshot.NewService(snapshot.ServiceConfig{
		Snapshots: snapshotRepo,
		Spots:     spotService,
		Presets:   presetService,
		Cache:     cache,
		Logger:    log,
	})

	// Token verification for the account system's JWTs
	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	verifier := auth.NewVerifier(auth.VerifierConfig{
		SigningKey: signingKey,
		Issuer:     getEnv("JWT_ISSUER", "https://accounts.swellwindow.app"),
		Audience:   getEnv("JWT_AUDIENCE", "swellwindow-api"),
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:               Version,
		BuildTime:             BuildTime,
		Logger:                log,
		ServiceName:           serviceName,
		Metrics:               metrics,
		Verifier:              verifier,
		SpotService:           spotService,
		PreferenceService:     preferenceService,
		PresetService:         presetService,
		RecommendationService: recommendationService,
		SnapshotService:       snapshotService,
		Cache:                 cache,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	// Let in-flight background refetches finish before exit
	recommendationService.Wait()

	log.Info().Msg("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
