// Package preset provides saved search presets: a named combination of
// spots, a day selection, and a UTC time-of-day window.
package preset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Preset errors.
var (
	ErrPresetNotFound = errors.New("preset not found")

	// ErrProtectedPreset is returned when deleting the user's
	// earliest-created preset, which is protected by convention.
	ErrProtectedPreset = errors.New("earliest preset cannot be deleted")
)

// DaySelection describes how DayValues are interpreted.
type DaySelection string

const (
	// DaySelectionOffsets means DayValues are day offsets (0=today).
	DaySelectionOffsets DaySelection = "offsets"

	// DaySelectionWeekdays means DayValues are weekday indices
	// (0=Sunday through 6=Saturday).
	DaySelectionWeekdays DaySelection = "weekdays"
)

// Preset is a saved combination of spots, days, and a time window for
// one-click recommendation retrieval. Start and end times are persisted
// as UTC times of day and converted to local only for display.
type Preset struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	SpotIDs      []int64      `json:"spot_ids"`
	StartTimeUTC string       `json:"start_time"` // "HH:mm:ss"
	EndTimeUTC   string       `json:"end_time"`   // "HH:mm:ss"
	DaySelection DaySelection `json:"day_selection_type"`
	DayValues    []int        `json:"day_values"`
	IsDefault    bool         `json:"is_default"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at,omitempty"`
}

// ReferencesSpot reports whether the preset includes the given spot.
func (p *Preset) ReferencesSpot(spotID int64) bool {
	for _, id := range p.SpotIDs {
		if id == spotID {
			return true
		}
	}
	return false
}

// FieldError describes a validation failure on a single field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field validation failures. The operation
// carrying invalid input is not attempted.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid preset: " + strings.Join(msgs, "; ")
}
