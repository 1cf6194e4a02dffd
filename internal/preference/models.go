// Package preference provides per-spot surf preference management with
// skill-level default fallback.
package preference

import (
	"errors"
	"time"
)

// Preference errors.
var (
	// ErrPreferenceNotFound signals the user has no saved preference for
	// the spot. Recoverable: callers fall back to level defaults.
	ErrPreferenceNotFound = errors.New("spot preference not found")

	// ErrDefaultsNotFound signals no level default exists for the
	// user/spot either. Recoverable: the user edits from a blank form.
	ErrDefaultsNotFound = errors.New("level defaults not found")
)

// TidePhase is a categorical tide state.
type TidePhase string

const (
	TideLow     TidePhase = "low"
	TideRising  TidePhase = "rising"
	TideHigh    TidePhase = "high"
	TideFalling TidePhase = "falling"
)

// Band is a numeric preference band. Min and Max bound acceptable
// values; Ideal is the preferred value. Some axes carry only Ideal.
type Band struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Ideal *float64 `json:"ideal,omitempty"`
}

// SpotPreference holds one user's preference bands for one spot.
// When IsActive is false the record is excluded from scoring server-side
// but the saved values are retained for editing.
type SpotPreference struct {
	SpotID   int64 `json:"spot_id"`
	IsActive bool  `json:"is_active"`

	WaveHeight  Band `json:"wave_height"`
	WavePeriod  Band `json:"wave_period"`
	SwellHeight Band `json:"swell_height"`
	SwellPeriod Band `json:"swell_period"`
	WindSpeed   Band `json:"wind_speed"`
	SeaLevel    Band `json:"sea_level"` // ideal only
	WaterTemp   Band `json:"water_temp"`
	AirTemp     Band `json:"air_temp"`

	WindDirections  []string  `json:"wind_directions,omitempty"`
	SwellDirections []string  `json:"swell_directions,omitempty"`
	IdealTide       TidePhase `json:"ideal_tide,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Resolution is the result of resolving a user's preference for a spot.
type Resolution struct {
	// Preference is the resolved preference record.
	Preference *SpotPreference

	// UsingDefaults is true when the record came from the user's level
	// defaults rather than a saved preference.
	UsingDefaults bool

	// NoDefaults is true when neither a saved preference nor a level
	// default was available and Preference is an empty active record.
	NoDefaults bool
}
