// Package api provides the HTTP API for SwellWindow.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/swellwindow/swellwindow/internal/api/handler"
	"github.com/swellwindow/swellwindow/internal/api/middleware"
	"github.com/swellwindow/swellwindow/internal/preference"
	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/snapshot"
	"github.com/swellwindow/swellwindow/internal/spot"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	Verifier              middleware.TokenVerifier
	SpotService           *spot.Service
	PreferenceService     *preference.Service
	PresetService         *preset.Service
	RecommendationService *recommendation.Service
	SnapshotService       *snapshot.Service
	Cache                 *recommendation.Cache
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "swellwindow-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Cache)
	spotHandler := handler.NewSpotHandler(cfg.SpotService)
	preferenceHandler := handler.NewPreferenceHandler(cfg.PreferenceService)
	presetHandler := handler.NewPresetHandler(cfg.PresetService)
	recommendationHandler := handler.NewRecommendationHandler(cfg.PresetService, cfg.RecommendationService)
	sessionHandler := handler.NewSessionHandler(cfg.SnapshotService)

	authMiddleware := middleware.Auth(cfg.Verifier)

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)
	refreshRateLimit := middleware.RateLimitByUser(middleware.RefreshRateLimit)

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Spot catalogue (public) - standard rate limiting
		r.Route("/spots", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", spotHandler.ListSpots)
			r.Get("/{spotId}", spotHandler.GetSpot)
		})

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			// Per-spot preferences
			r.Route("/preferences/{spotId}", func(r chi.Router) {
				r.Get("/", preferenceHandler.GetPreference)
				r.Put("/", preferenceHandler.PutPreference)
				r.Delete("/", preferenceHandler.DeletePreference)
			})

			// Presets
			r.Route("/presets", func(r chi.Router) {
				r.Get("/", presetHandler.ListPresets)
				r.Post("/", presetHandler.CreatePreset)
				r.Route("/{presetId}", func(r chi.Router) {
					r.Get("/", presetHandler.GetPreset)
					r.Put("/", presetHandler.UpdatePreset)
					r.Delete("/", presetHandler.DeletePreset)
				})
			})

			// Recommendations
			r.Route("/recommendations/{presetId}", func(r chi.Router) {
				r.Get("/", recommendationHandler.GetRecommendations)
				// Forced refreshes hit the paid backend, so they get
				// their own tight limit.
				r.With(refreshRateLimit).Post("/refresh", recommendationHandler.RefreshRecommendations)
			})

			// Snapshot and session lifecycle
			r.Get("/snapshot", sessionHandler.GetSnapshot)
			r.Post("/snapshot", sessionHandler.SaveSnapshot)
			r.Post("/session/logout", sessionHandler.Logout)
		})
	})

	return r
}
