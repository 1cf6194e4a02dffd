package models

import (
	"time"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/timeframe"
)

// Preset is the API representation of a saved search preset. Times are
// UTC times of day; StartTimeLocal and EndTimeLocal are filled in only
// when the caller asked for a timezone-specific view.
type Preset struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	SpotIDs          []int64    `json:"spot_ids"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	StartTimeLocal   string     `json:"start_time_local,omitempty"`
	EndTimeLocal     string     `json:"end_time_local,omitempty"`
	DaySelectionType string     `json:"day_selection_type"`
	DayValues        []int      `json:"day_values"`
	IsDefault        bool       `json:"is_default"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        *Timestamp `json:"created_at,omitempty"`
	UpdatedAt        *Timestamp `json:"updated_at,omitempty"`
}

// PresetList is the response for a user's presets.
type PresetList struct {
	Presets []Preset `json:"presets"`
}

// PresetRequest is the payload for creating or updating a preset.
// When Timezone is set, StartTime and EndTime are interpreted as local
// times of day in that zone and converted to UTC before storage.
type PresetRequest struct {
	Name             string  `json:"name"`
	SpotIDs          []int64 `json:"spot_ids"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Timezone         string  `json:"timezone,omitempty"`
	DaySelectionType string  `json:"day_selection_type"`
	DayValues        []int   `json:"day_values"`
	IsDefault        bool    `json:"is_default"`
	IsActive         bool    `json:"is_active"`
}

// NewPreset converts a domain preset to its API representation. When
// loc is non-nil the local time fields are derived from the stored UTC
// times using the current offset of that zone.
func NewPreset(p *preset.Preset, loc *time.Location, now time.Time) Preset {
	out := Preset{
		ID:               p.ID,
		Name:             p.Name,
		SpotIDs:          p.SpotIDs,
		StartTime:        p.StartTimeUTC,
		EndTime:          p.EndTimeUTC,
		DaySelectionType: string(p.DaySelection),
		DayValues:        p.DayValues,
		IsDefault:        p.IsDefault,
		IsActive:         p.IsActive,
	}
	if !p.CreatedAt.IsZero() {
		ts := Timestamp(p.CreatedAt)
		out.CreatedAt = &ts
	}
	if !p.UpdatedAt.IsZero() {
		ts := Timestamp(p.UpdatedAt)
		out.UpdatedAt = &ts
	}

	if loc != nil {
		local := now.In(loc)
		if s, err := timeframe.UTCTimeToLocal(p.StartTimeUTC, local); err == nil {
			out.StartTimeLocal = s
		}
		if e, err := timeframe.UTCTimeToLocal(p.EndTimeUTC, local); err == nil {
			out.EndTimeLocal = e
		}
	}
	return out
}

// NewPresetList converts domain presets to an API preset list.
func NewPresetList(presets []*preset.Preset, loc *time.Location, now time.Time) PresetList {
	out := PresetList{Presets: make([]Preset, 0, len(presets))}
	for _, p := range presets {
		out.Presets = append(out.Presets, NewPreset(p, loc, now))
	}
	return out
}

// ToPreset converts the request into a domain preset, translating
// local times of day to UTC when a timezone was given.
func (r *PresetRequest) ToPreset(userID string, now time.Time) (*preset.Preset, error) {
	start, end := r.StartTime, r.EndTime
	if r.Timezone != "" {
		loc, err := time.LoadLocation(r.Timezone)
		if err != nil {
			return nil, err
		}
		local := now.In(loc)
		if start, err = timeframe.LocalTimeToUTC(r.StartTime, local); err != nil {
			return nil, err
		}
		if end, err = timeframe.LocalTimeToUTC(r.EndTime, local); err != nil {
			return nil, err
		}
	}

	return &preset.Preset{
		UserID:       userID,
		Name:         r.Name,
		SpotIDs:      r.SpotIDs,
		StartTimeUTC: start,
		EndTimeUTC:   end,
		DaySelection: preset.DaySelection(r.DaySelectionType),
		DayValues:    r.DayValues,
		IsDefault:    r.IsDefault,
		IsActive:     r.IsActive,
	}, nil
}
