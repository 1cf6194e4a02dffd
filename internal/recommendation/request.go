package recommendation

import (
	"time"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/timeframe"
)

// BuildRequest translates a preset into a recommendation request.
// Explicit day offsets pass through unchanged; weekday selections are
// resolved against today in the caller's frame of reference. The stored
// time window is already UTC and passes through as-is.
func BuildRequest(p *preset.Preset, today time.Time) *Request {
	var offsets []int
	if p.DaySelection == preset.DaySelectionWeekdays {
		offsets = timeframe.WeekdaysToOffsets(p.DayValues, today)
	} else {
		offsets = append([]int(nil), p.DayValues...)
	}

	return &Request{
		UserID:       p.UserID,
		SpotIDs:      append([]int64(nil), p.SpotIDs...),
		DayOffsets:   offsets,
		StartTimeUTC: p.StartTimeUTC,
		EndTimeUTC:   p.EndTimeUTC,
	}
}
