package handler

import (
	"errors"
	"net/http"

	"github.com/swellwindow/swellwindow/internal/api/response"
	"github.com/swellwindow/swellwindow/internal/snapshot"
)

// SessionHandler handles snapshot and session lifecycle endpoints.
type SessionHandler struct {
	snapshots *snapshot.Service
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(snapshots *snapshot.Service) *SessionHandler {
	return &SessionHandler{snapshots: snapshots}
}

// GetSnapshot handles GET /v1/me/snapshot - load the bootstrap
// snapshot and warm the recommendation cache from it.
func (h *SessionHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshots.Load(r.Context(), GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, snapshot.ErrSnapshotNotFound) {
			response.NotFound(w, r, "no snapshot for this user")
			return
		}
		response.ServiceUnavailable(w, r, "snapshot store is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// SaveSnapshot handles POST /v1/me/snapshot - capture the user's
// current state.
func (h *SessionHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshots.Save(r.Context(), GetUserID(r.Context())); err != nil {
		response.ServiceUnavailable(w, r, "snapshot store is unavailable")
		return
	}
	response.NoContent(w, r)
}

// Logout handles POST /v1/me/session/logout - drop the user's snapshot
// and evict their cached recommendations.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshots.Clear(r.Context(), GetUserID(r.Context())); err != nil {
		response.ServiceUnavailable(w, r, "snapshot store is unavailable")
		return
	}
	response.NoContent(w, r)
}
