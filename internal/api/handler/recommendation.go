package handler

import (
	"errors"
	"net/http"

	"github.com/swellwindow/swellwindow/internal/api/models"
	"github.com/swellwindow/swellwindow/internal/api/response"
	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
)

// RecommendationHandler handles per-preset recommendation endpoints.
type RecommendationHandler struct {
	presets         *preset.Service
	recommendations *recommendation.Service
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(presets *preset.Service, recommendations *recommendation.Service) *RecommendationHandler {
	return &RecommendationHandler{
		presets:         presets,
		recommendations: recommendations,
	}
}

func (h *RecommendationHandler) loadPreset(w http.ResponseWriter, r *http.Request) (*preset.Preset, bool) {
	presetID, ok := presetIDParam(w, r)
	if !ok {
		return nil, false
	}

	p, err := h.presets.Get(r.Context(), GetUserID(r.Context()), presetID)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			response.NotFound(w, r, "preset not found")
			return nil, false
		}
		response.ServiceUnavailable(w, r, "preset store is unavailable")
		return nil, false
	}
	return p, true
}

// GetRecommendations handles GET /v1/me/recommendations/{presetId}.
// Serves the cached set while it is fresh and fetches from the backend
// otherwise.
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPreset(w, r)
	if !ok {
		return
	}

	set, fromCache, err := h.recommendations.GetForPreset(r.Context(), p)
	if err != nil {
		response.ServiceUnavailable(w, r, "recommendation backend is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewRecommendationSet(set, fromCache))
}

// RefreshRecommendations handles POST
// /v1/me/recommendations/{presetId}/refresh - force a backend fetch,
// bypassing the cache.
func (h *RecommendationHandler) RefreshRecommendations(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPreset(w, r)
	if !ok {
		return
	}

	set, err := h.recommendations.Refresh(r.Context(), p)
	if err != nil {
		response.ServiceUnavailable(w, r, "recommendation backend is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewRecommendationSet(set, false))
}
