// Package snapshot persists a per-user bootstrap snapshot: the spot
// catalogue, the user's presets, and their cached recommendations.
// Clients load one snapshot at startup instead of issuing a request
// per resource.
package snapshot

import (
	"errors"
	"time"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/spot"
)

// Predefined snapshot errors.
var (
	// ErrSnapshotNotFound is returned when no snapshot exists for a user.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Snapshot is the persisted bootstrap state for one user.
type Snapshot struct {
	UserID string `json:"user_id"`

	// Spots is the spot catalogue as of the last save.
	Spots []*spot.Spot `json:"spots"`

	// Presets are the user's presets as of the last save.
	Presets []*preset.Preset `json:"presets"`

	// Recommendations holds the user's cache entries keyed by preset ID.
	Recommendations map[int64]recommendation.Entry `json:"recommendations"`

	// CacheTimestamp is when the recommendation entries were captured.
	// The whole recommendation section expires together based on this.
	CacheTimestamp time.Time `json:"cache_timestamp"`

	UpdatedAt time.Time `json:"updated_at"`
}
