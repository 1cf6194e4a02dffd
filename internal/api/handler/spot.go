package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swellwindow/swellwindow/internal/api/models"
	"github.com/swellwindow/swellwindow/internal/api/response"
	"github.com/swellwindow/swellwindow/internal/spot"
)

// SpotHandler handles spot catalogue endpoints.
type SpotHandler struct {
	spots *spot.Service
}

// NewSpotHandler creates a new SpotHandler.
func NewSpotHandler(spots *spot.Service) *SpotHandler {
	return &SpotHandler{spots: spots}
}

// ListSpots handles GET /v1/spots - the spot catalogue.
func (h *SpotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.spots.List(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "spot catalogue is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewSpotList(spots))
}

// GetSpot handles GET /v1/spots/{spotId} - a single spot.
func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	spotID, err := strconv.ParseInt(chi.URLParam(r, "spotId"), 10, 64)
	if err != nil {
		response.BadRequest(w, r, "spotId must be an integer", nil)
		return
	}

	s, err := h.spots.Get(r.Context(), spotID)
	if err != nil {
		if errors.Is(err, spot.ErrSpotNotFound) {
			response.NotFound(w, r, "spot not found")
			return
		}
		response.ServiceUnavailable(w, r, "spot catalogue is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewSpot(s))
}
