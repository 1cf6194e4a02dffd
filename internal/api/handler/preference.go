package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swellwindow/swellwindow/internal/api/models"
	"github.com/swellwindow/swellwindow/internal/api/response"
	"github.com/swellwindow/swellwindow/internal/preference"
)

// PreferenceHandler handles per-spot preference endpoints.
type PreferenceHandler struct {
	preferences *preference.Service
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferences *preference.Service) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

func spotIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	spotID, err := strconv.ParseInt(chi.URLParam(r, "spotId"), 10, 64)
	if err != nil {
		response.BadRequest(w, r, "spotId must be an integer", nil)
		return 0, false
	}
	return spotID, true
}

// GetPreference handles GET /v1/me/preferences/{spotId}. The response
// is always a full preference record: the user's saved one, their
// level defaults, or an empty record flagged no_defaults.
func (h *PreferenceHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	spotID, ok := spotIDParam(w, r)
	if !ok {
		return
	}

	res, err := h.preferences.Resolve(r.Context(), GetUserID(r.Context()), spotID)
	if err != nil {
		response.ServiceUnavailable(w, r, "preference store is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewPreference(res))
}

// PutPreference handles PUT /v1/me/preferences/{spotId} - save the
// user's preference for a spot.
func (h *PreferenceHandler) PutPreference(w http.ResponseWriter, r *http.Request) {
	spotID, ok := spotIDParam(w, r)
	if !ok {
		return
	}

	var input models.PreferenceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid preference", errs)
		return
	}

	userID := GetUserID(r.Context())
	pref := input.ToPreference(spotID)
	if err := h.preferences.Save(r.Context(), userID, pref, input.UsingDefaults); err != nil {
		if errors.Is(err, preference.ErrPreferenceNotFound) {
			response.NotFound(w, r, "no saved preference to deactivate")
			return
		}
		response.ServiceUnavailable(w, r, "preference store is unavailable")
		return
	}

	res, err := h.preferences.Resolve(r.Context(), userID, spotID)
	if err != nil {
		response.ServiceUnavailable(w, r, "preference store is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewPreference(res))
}

// DeletePreference handles DELETE /v1/me/preferences/{spotId} -
// deactivate the saved preference while keeping its bands stored.
func (h *PreferenceHandler) DeletePreference(w http.ResponseWriter, r *http.Request) {
	spotID, ok := spotIDParam(w, r)
	if !ok {
		return
	}

	pref := &preference.SpotPreference{SpotID: spotID, IsActive: false}
	if err := h.preferences.Save(r.Context(), GetUserID(r.Context()), pref, false); err != nil {
		if errors.Is(err, preference.ErrPreferenceNotFound) {
			response.NotFound(w, r, "no saved preference for this spot")
			return
		}
		response.ServiceUnavailable(w, r, "preference store is unavailable")
		return
	}
	response.NoContent(w, r)
}
