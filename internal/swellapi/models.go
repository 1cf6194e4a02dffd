package swellapi

import (
	"time"

	"github.com/swellwindow/swellwindow/internal/preference"
	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/spot"
)

// Wire types for the backend API. Kept separate from the domain models
// so backend field changes stay contained here.

type spotResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Latitude float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone string  `json:"timezone"`
}

type spotsResponse struct {
	Spots []spotResponse `json:"spots"`
}

func (r *spotResponse) toSpot() *spot.Spot {
	return &spot.Spot{
		ID:       r.ID,
		Name:     r.Name,
		Lat:      r.Latitude,
		Lon:      r.Longitude,
		Timezone: r.Timezone,
	}
}

type bandPayload struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Ideal *float64 `json:"ideal,omitempty"`
}

func toBandPayload(b preference.Band) *bandPayload {
	if b.Min == nil && b.Max == nil && b.Ideal == nil {
		return nil
	}
	return &bandPayload{Min: b.Min, Max: b.Max, Ideal: b.Ideal}
}

func fromBandPayload(b *bandPayload) preference.Band {
	if b == nil {
		return preference.Band{}
	}
	return preference.Band{Min: b.Min, Max: b.Max, Ideal: b.Ideal}
}

type preferenceResponse struct {
	SpotID          int64        `json:"spot_id"`
	IsActive        bool         `json:"is_active"`
	WaveHeight      *bandPayload `json:"wave_height,omitempty"`
	WavePeriod      *bandPayload `json:"wave_period,omitempty"`
	SwellHeight     *bandPayload `json:"swell_height,omitempty"`
	SwellPeriod     *bandPayload `json:"swell_period,omitempty"`
	WindSpeed       *bandPayload `json:"wind_speed,omitempty"`
	SeaLevel        *bandPayload `json:"sea_level,omitempty"`
	WaterTemp       *bandPayload `json:"water_temp,omitempty"`
	AirTemp         *bandPayload `json:"air_temp,omitempty"`
	WindDirections  []string     `json:"wind_directions,omitempty"`
	SwellDirections []string     `json:"swell_directions,omitempty"`
	IdealTide       string       `json:"ideal_tide,omitempty"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (r *preferenceResponse) toPreference() *preference.SpotPreference {
	return &preference.SpotPreference{
		SpotID:          r.SpotID,
		IsActive:        r.IsActive,
		WaveHeight:      fromBandPayload(r.WaveHeight),
		WavePeriod:      fromBandPayload(r.WavePeriod),
		SwellHeight:     fromBandPayload(r.SwellHeight),
		SwellPeriod:     fromBandPayload(r.SwellPeriod),
		WindSpeed:       fromBandPayload(r.WindSpeed),
		SeaLevel:        fromBandPayload(r.SeaLevel),
		WaterTemp:       fromBandPayload(r.WaterTemp),
		AirTemp:         fromBandPayload(r.AirTemp),
		WindDirections:  r.WindDirections,
		SwellDirections: r.SwellDirections,
		IdealTide:       preference.TidePhase(r.IdealTide),
		UpdatedAt:       r.UpdatedAt,
	}
}

// preferencePayload builds the save body from the fixed allow-list of
// recognized preference fields. Anything outside this set is never
// forwarded upstream.
func preferencePayload(p *preference.SpotPreference) map[string]any {
	payload := map[string]any{
		"is_active": p.IsActive,
	}

	bands := map[string]preference.Band{
		"wave_height":  p.WaveHeight,
		"wave_period":  p.WavePeriod,
		"swell_height": p.SwellHeight,
		"swell_period": p.SwellPeriod,
		"wind_speed":   p.WindSpeed,
		"sea_level":    p.SeaLevel,
		"water_temp":   p.WaterTemp,
		"air_temp":     p.AirTemp,
	}
	for key, band := range bands {
		if bp := toBandPayload(band); bp != nil {
			payload[key] = bp
		}
	}

	if len(p.WindDirections) > 0 {
		payload["wind_directions"] = p.WindDirections
	}
	if len(p.SwellDirections) > 0 {
		payload["swell_directions"] = p.SwellDirections
	}
	if p.IdealTide != "" {
		payload["ideal_tide"] = string(p.IdealTide)
	}

	return payload
}

type presetPayload struct {
	ID           int64     `json:"id,omitempty"`
	Name         string    `json:"name"`
	SpotIDs      []int64   `json:"spot_ids"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	DaySelection string    `json:"day_selection_type"`
	DayValues    []int     `json:"day_values"`
	IsDefault    bool      `json:"is_default"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type presetsResponse struct {
	Presets []presetPayload `json:"presets"`
}

func toPresetPayload(p *preset.Preset) *presetPayload {
	return &presetPayload{
		ID:           p.ID,
		Name:         p.Name,
		SpotIDs:      p.SpotIDs,
		StartTime:    p.StartTimeUTC,
		EndTime:      p.EndTimeUTC,
		DaySelection: string(p.DaySelection),
		DayValues:    p.DayValues,
		IsDefault:    p.IsDefault,
		IsActive:     p.IsActive,
	}
}

func (r *presetPayload) toPreset(userID string) *preset.Preset {
	return &preset.Preset{
		ID:           r.ID,
		UserID:       userID,
		Name:         r.Name,
		SpotIDs:      r.SpotIDs,
		StartTimeUTC: r.StartTime,
		EndTimeUTC:   r.EndTime,
		DaySelection: preset.DaySelection(r.DaySelection),
		DayValues:    r.DayValues,
		IsDefault:    r.IsDefault,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type recommendationHour struct {
	Timestamp        time.Time          `json:"timestamp"`
	SuitabilityScore float64            `json:"suitability_score"`
	DetailedScores   map[string]float64 `json:"detailed_scores"`
	Conditions       conditionsPayload  `json:"conditions"`
}

type conditionsPayload struct {
	WaveHeight     float64 `json:"wave_height"`
	WavePeriod     float64 `json:"wave_period"`
	SwellHeight    float64 `json:"swell_height"`
	SwellPeriod    float64 `json:"swell_period"`
	SwellDirection string  `json:"swell_direction"`
	WindSpeed      float64 `json:"wind_speed"`
	WindDirection  string  `json:"wind_direction"`
	SeaLevel       float64 `json:"sea_level"`
	WaterTemp      float64 `json:"water_temp"`
	AirTemp        float64 `json:"air_temp"`
	TidePhase      string  `json:"tide_phase"`
}

type recommendationSpotDay struct {
	SpotID    int64                `json:"spot_id"`
	DayOffset int                  `json:"day_offset"`
	Hours     []recommendationHour `json:"hours"`
}

type recommendationsResponse struct {
	Spots []recommendationSpotDay `json:"spots"`
}

func (r *recommendationsResponse) toSet() *recommendation.Set {
	set := &recommendation.Set{
		Spots: make([]recommendation.SpotDay, 0, len(r.Spots)),
	}
	for _, sd := range r.Spots {
		hours := make([]recommendation.Hour, 0, len(sd.Hours))
		for _, h := range sd.Hours {
			hours = append(hours, recommendation.Hour{
				Time:             h.Timestamp,
				SuitabilityScore: h.SuitabilityScore,
				DetailedScores:   h.DetailedScores,
				Conditions: recommendation.Conditions{
					WaveHeight:     h.Conditions.WaveHeight,
					WavePeriod:     h.Conditions.WavePeriod,
					SwellHeight:    h.Conditions.SwellHeight,
					SwellPeriod:    h.Conditions.SwellPeriod,
					SwellDirection: h.Conditions.SwellDirection,
					WindSpeed:      h.Conditions.WindSpeed,
					WindDirection:  h.Conditions.WindDirection,
					SeaLevel:       h.Conditions.SeaLevel,
					WaterTemp:      h.Conditions.WaterTemp,
					AirTemp:        h.Conditions.AirTemp,
					TidePhase:      h.Conditions.TidePhase,
				},
			})
		}
		set.Spots = append(set.Spots, recommendation.SpotDay{
			SpotID:    sd.SpotID,
			DayOffset: sd.DayOffset,
			Hours:     hours,
		})
	}
	return set
}
