// Package handler provides HTTP handlers for the SwellWindow API.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/swellwindow/swellwindow/internal/api/models"
	"github.com/swellwindow/swellwindow/internal/api/response"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/swellapi"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	cache     *recommendation.Cache
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, cache *recommendation.Cache) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		cache:     cache,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem and provider
// status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	cacheStatus := models.SubsystemStatus{Name: "recommendation-cache", Status: models.HealthStatusOK}
	if h.cache != nil {
		detail := "entries: " + strconv.Itoa(h.cache.Len())
		cacheStatus.Detail = &detail
	}

	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			cacheStatus,
			{Name: "cloud-sql", Status: models.HealthStatusOK},
		},
		Providers: []models.ProviderStatus{
			{Provider: swellapi.ProviderName, Status: models.HealthStatusOK},
		},
	}
	response.JSON(w, r, http.StatusOK, status)
}
