// Package recommendation provides the per-preset recommendation cache
// and the invalidation/refresh orchestration around it.
package recommendation

import (
	"errors"
	"time"
)

// Recommendation errors.
var (
	// ErrBackendUnavailable is returned when the recommendation endpoint
	// cannot be reached or fails.
	ErrBackendUnavailable = errors.New("recommendation backend unavailable")
)

// Request is the payload sent to the external recommendation endpoint.
// Times of day are UTC "HH:mm:ss".
type Request struct {
	UserID       string  `json:"user_id"`
	SpotIDs      []int64 `json:"spot_ids"`
	DayOffsets   []int   `json:"day_offset"`
	StartTimeUTC string  `json:"start_time"`
	EndTimeUTC   string  `json:"end_time"`
}

// Conditions holds the raw forecast values behind a scored hour.
type Conditions struct {
	WaveHeight     float64 `json:"wave_height"`
	WavePeriod     float64 `json:"wave_period"`
	SwellHeight    float64 `json:"swell_height"`
	SwellPeriod    float64 `json:"swell_period"`
	SwellDirection string  `json:"swell_direction,omitempty"`
	WindSpeed      float64 `json:"wind_speed"`
	WindDirection  string  `json:"wind_direction,omitempty"`
	SeaLevel       float64 `json:"sea_level"`
	WaterTemp      float64 `json:"water_temp"`
	AirTemp        float64 `json:"air_temp"`
	TidePhase      string  `json:"tide_phase,omitempty"`
}

// Hour is one scored forecast hour. The suitability score (0-100) and
// the per-factor detailed scores are computed server-side and opaque to
// this service.
type Hour struct {
	Time             time.Time          `json:"timestamp"`
	SuitabilityScore float64            `json:"suitability_score"`
	DetailedScores   map[string]float64 `json:"detailed_scores,omitempty"`
	Conditions       Conditions         `json:"conditions"`
}

// SpotDay groups the ranked hours for one spot on one day offset.
type SpotDay struct {
	SpotID    int64  `json:"spot_id"`
	DayOffset int    `json:"day_offset"`
	Hours     []Hour `json:"hours"`
}

// Set is the full recommendation payload for one preset, ranked by the
// backend.
type Set struct {
	PresetID  int64     `json:"preset_id"`
	Spots     []SpotDay `json:"spots"`
	FetchedAt time.Time `json:"fetched_at"`
}
