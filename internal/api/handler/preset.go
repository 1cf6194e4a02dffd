package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/swellwindow/swellwindow/internal/api/models"
	"github.com/swellwindow/swellwindow/internal/api/response"
	"github.com/swellwindow/swellwindow/internal/preset"
)

// PresetHandler handles preset CRUD endpoints.
type PresetHandler struct {
	presets *preset.Service
}

// NewPresetHandler creates a new PresetHandler.
func NewPresetHandler(presets *preset.Service) *PresetHandler {
	return &PresetHandler{presets: presets}
}

// displayLocation resolves the optional tz query parameter used to add
// local times of day to responses.
func displayLocation(r *http.Request) (*time.Location, error) {
	tz := r.URL.Query().Get("tz")
	if tz == "" {
		return nil, nil
	}
	return time.LoadLocation(tz)
}

func presetIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	presetID, err := strconv.ParseInt(chi.URLParam(r, "presetId"), 10, 64)
	if err != nil {
		response.BadRequest(w, r, "presetId must be an integer", nil)
		return 0, false
	}
	return presetID, true
}

func fieldErrors(ve *preset.ValidationError) []models.FieldError {
	out := make([]models.FieldError, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, models.FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}

// ListPresets handles GET /v1/me/presets.
func (h *PresetHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	loc, err := displayLocation(r)
	if err != nil {
		response.BadRequest(w, r, "unknown timezone", nil)
		return
	}

	presets, err := h.presets.List(r.Context(), GetUserID(r.Context()))
	if err != nil {
		response.ServiceUnavailable(w, r, "preset store is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewPresetList(presets, loc, time.Now()))
}

// GetPreset handles GET /v1/me/presets/{presetId}.
func (h *PresetHandler) GetPreset(w http.ResponseWriter, r *http.Request) {
	presetID, ok := presetIDParam(w, r)
	if !ok {
		return
	}
	loc, err := displayLocation(r)
	if err != nil {
		response.BadRequest(w, r, "unknown timezone", nil)
		return
	}

	p, err := h.presets.Get(r.Context(), GetUserID(r.Context()), presetID)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			response.NotFound(w, r, "preset not found")
			return
		}
		response.ServiceUnavailable(w, r, "preset store is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewPreset(p, loc, time.Now()))
}

// CreatePreset handles POST /v1/me/presets.
func (h *PresetHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var input models.PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	userID := GetUserID(r.Context())
	p, err := input.ToPreset(userID, time.Now())
	if err != nil {
		response.BadRequest(w, r, "invalid time or timezone", nil)
		return
	}

	created, err := h.presets.Create(r.Context(), userID, p)
	if err != nil {
		var ve *preset.ValidationError
		if errors.As(err, &ve) {
			response.BadRequest(w, r, "invalid preset", fieldErrors(ve))
			return
		}
		response.ServiceUnavailable(w, r, "preset store is unavailable")
		return
	}

	location := fmt.Sprintf("/v1/me/presets/%d", created.ID)
	response.Created(w, r, location, models.NewPreset(created, nil, time.Now()))
}

// UpdatePreset handles PUT /v1/me/presets/{presetId}.
func (h *PresetHandler) UpdatePreset(w http.ResponseWriter, r *http.Request) {
	presetID, ok := presetIDParam(w, r)
	if !ok {
		return
	}

	var input models.PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	userID := GetUserID(r.Context())
	p, err := input.ToPreset(userID, time.Now())
	if err != nil {
		response.BadRequest(w, r, "invalid time or timezone", nil)
		return
	}
	p.ID = presetID

	updated, err := h.presets.Update(r.Context(), userID, p)
	if err != nil {
		var ve *preset.ValidationError
		switch {
		case errors.As(err, &ve):
			response.BadRequest(w, r, "invalid preset", fieldErrors(ve))
		case errors.Is(err, preset.ErrPresetNotFound):
			response.NotFound(w, r, "preset not found")
		default:
			response.ServiceUnavailable(w, r, "preset store is unavailable")
		}
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewPreset(updated, nil, time.Now()))
}

// DeletePreset handles DELETE /v1/me/presets/{presetId}.
func (h *PresetHandler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	presetID, ok := presetIDParam(w, r)
	if !ok {
		return
	}

	err := h.presets.Delete(r.Context(), GetUserID(r.Context()), presetID)
	if err != nil {
		switch {
		case errors.Is(err, preset.ErrPresetNotFound):
			response.NotFound(w, r, "preset not found")
		case errors.Is(err, preset.ErrProtectedPreset):
			response.Conflict(w, r, "the earliest preset cannot be deleted")
		default:
			response.ServiceUnavailable(w, r, "preset store is unavailable")
		}
		return
	}
	response.NoContent(w, r)
}
