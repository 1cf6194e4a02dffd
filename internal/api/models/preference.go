package models

import (
	"github.com/swellwindow/swellwindow/internal/preference"
)

// PreferenceBand is an acceptable range with an optional ideal value.
type PreferenceBand struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Ideal *float64 `json:"ideal,omitempty"`
}

// Preference is the API representation of a resolved spot preference.
type Preference struct {
	SpotID          int64           `json:"spot_id"`
	IsActive        bool            `json:"is_active"`
	WaveHeight      *PreferenceBand `json:"wave_height,omitempty"`
	WavePeriod      *PreferenceBand `json:"wave_period,omitempty"`
	SwellHeight     *PreferenceBand `json:"swell_height,omitempty"`
	SwellPeriod     *PreferenceBand `json:"swell_period,omitempty"`
	WindSpeed       *PreferenceBand `json:"wind_speed,omitempty"`
	SeaLevel        *PreferenceBand `json:"sea_level,omitempty"`
	WaterTemp       *PreferenceBand `json:"water_temp,omitempty"`
	AirTemp         *PreferenceBand `json:"air_temp,omitempty"`
	WindDirections  []string        `json:"wind_directions,omitempty"`
	SwellDirections []string        `json:"swell_directions,omitempty"`
	IdealTide       string          `json:"ideal_tide,omitempty"`

	// UsingDefaults is true when the record came from level defaults
	// rather than a saved preference.
	UsingDefaults bool `json:"using_defaults"`

	// NoDefaults is true when neither a saved preference nor level
	// defaults exist; the bands above are empty in that case.
	NoDefaults bool `json:"no_defaults"`

	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// PreferenceUpdateRequest is the payload for saving a preference. Its
// fields are the full set the service recognizes; anything else a
// client sends is discarded by decoding.
type PreferenceUpdateRequest struct {
	IsActive        bool            `json:"is_active"`
	WaveHeight      *PreferenceBand `json:"wave_height,omitempty"`
	WavePeriod      *PreferenceBand `json:"wave_period,omitempty"`
	SwellHeight     *PreferenceBand `json:"swell_height,omitempty"`
	SwellPeriod     *PreferenceBand `json:"swell_period,omitempty"`
	WindSpeed       *PreferenceBand `json:"wind_speed,omitempty"`
	SeaLevel        *PreferenceBand `json:"sea_level,omitempty"`
	WaterTemp       *PreferenceBand `json:"water_temp,omitempty"`
	AirTemp         *PreferenceBand `json:"air_temp,omitempty"`
	WindDirections  []string        `json:"wind_directions,omitempty"`
	SwellDirections []string        `json:"swell_directions,omitempty"`
	IdealTide       string          `json:"ideal_tide,omitempty"`

	// UsingDefaults marks a save of accepted level defaults.
	UsingDefaults bool `json:"using_defaults"`
}

func bandToAPI(b preference.Band) *PreferenceBand {
	if b.Min == nil && b.Max == nil && b.Ideal == nil {
		return nil
	}
	return &PreferenceBand{Min: b.Min, Max: b.Max, Ideal: b.Ideal}
}

func bandFromAPI(b *PreferenceBand) preference.Band {
	if b == nil {
		return preference.Band{}
	}
	return preference.Band{Min: b.Min, Max: b.Max, Ideal: b.Ideal}
}

// NewPreference converts a resolution to its API representation.
func NewPreference(res *preference.Resolution) Preference {
	p := res.Preference
	out := Preference{
		SpotID:          p.SpotID,
		IsActive:        p.IsActive,
		WaveHeight:      bandToAPI(p.WaveHeight),
		WavePeriod:      bandToAPI(p.WavePeriod),
		SwellHeight:     bandToAPI(p.SwellHeight),
		SwellPeriod:     bandToAPI(p.SwellPeriod),
		WindSpeed:       bandToAPI(p.WindSpeed),
		SeaLevel:        bandToAPI(p.SeaLevel),
		WaterTemp:       bandToAPI(p.WaterTemp),
		AirTemp:         bandToAPI(p.AirTemp),
		WindDirections:  p.WindDirections,
		SwellDirections: p.SwellDirections,
		IdealTide:       string(p.IdealTide),
		UsingDefaults:   res.UsingDefaults,
		NoDefaults:      res.NoDefaults,
	}
	if !p.UpdatedAt.IsZero() {
		ts := Timestamp(p.UpdatedAt)
		out.UpdatedAt = &ts
	}
	return out
}

// ToPreference converts a save request into a domain preference for
// the given spot.
func (r *PreferenceUpdateRequest) ToPreference(spotID int64) *preference.SpotPreference {
	return &preference.SpotPreference{
		SpotID:          spotID,
		IsActive:        r.IsActive,
		WaveHeight:      bandFromAPI(r.WaveHeight),
		WavePeriod:      bandFromAPI(r.WavePeriod),
		SwellHeight:     bandFromAPI(r.SwellHeight),
		SwellPeriod:     bandFromAPI(r.SwellPeriod),
		WindSpeed:       bandFromAPI(r.WindSpeed),
		SeaLevel:        bandFromAPI(r.SeaLevel),
		WaterTemp:       bandFromAPI(r.WaterTemp),
		AirTemp:         bandFromAPI(r.AirTemp),
		WindDirections:  r.WindDirections,
		SwellDirections: r.SwellDirections,
		IdealTide:       preference.TidePhase(r.IdealTide),
	}
}

// Validate checks band ordering and enum values.
func (r *PreferenceUpdateRequest) Validate() []FieldError {
	var errs []FieldError

	bands := map[string]*PreferenceBand{
		"wave_height":  r.WaveHeight,
		"wave_period":  r.WavePeriod,
		"swell_height": r.SwellHeight,
		"swell_period": r.SwellPeriod,
		"wind_speed":   r.WindSpeed,
		"sea_level":    r.SeaLevel,
		"water_temp":   r.WaterTemp,
		"air_temp":     r.AirTemp,
	}
	for field, b := range bands {
		if b == nil {
			continue
		}
		if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
			errs = append(errs, FieldError{Field: field, Message: "min must not exceed max", Code: "band_order"})
		}
	}

	switch preference.TidePhase(r.IdealTide) {
	case "", preference.TideLow, preference.TideRising, preference.TideHigh, preference.TideFalling:
	default:
		errs = append(errs, FieldError{Field: "ideal_tide", Message: "unknown tide phase", Code: "enum"})
	}

	return errs
}
