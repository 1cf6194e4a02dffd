// Package timeframe converts between local and UTC times of day and
// translates weekday selections into concrete day offsets.
package timeframe

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Timeframe errors.
var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// LocalTimeToUTC converts a local "HH:mm" time of day to a UTC "HH:mm:ss"
// time of day. The conversion applies the offset of now's location on
// now's date; daylight-saving transitions on other dates are not
// accounted for.
func LocalTimeToUTC(local string, now time.Time) (string, error) {
	t, err := time.Parse("15:04", local)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, local)
	}

	wall := time.Date(now.Year(), now.Month(), now.Day(),
		t.Hour(), t.Minute(), 0, 0, now.Location())
	return wall.UTC().Format("15:04:05"), nil
}

// UTCTimeToLocal converts a UTC "HH:mm" or "HH:mm:ss" time of day to a
// local "HH:mm" time of day in now's location. Inverse of LocalTimeToUTC
// at a fixed offset.
func UTCTimeToLocal(utc string, now time.Time) (string, error) {
	t, err := time.Parse("15:04:05", utc)
	if err != nil {
		t, err = time.Parse("15:04", utc)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, utc)
		}
	}

	wall := time.Date(now.Year(), now.Month(), now.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return wall.In(now.Location()).Format("15:04"), nil
}

// WeekdaysToOffsets translates a set of weekday indices (0=Sunday through
// 6=Saturday) into ascending day offsets relative to today (0=today).
// Weekday values outside 0..6 are ignored. The result is never empty: an
// empty or fully invalid selection maps to [0] so callers always have at
// least today to request.
func WeekdaysToOffsets(weekdays []int, today time.Time) []int {
	selected := make(map[int]bool, len(weekdays))
	for _, wd := range weekdays {
		if wd >= 0 && wd <= 6 {
			selected[wd] = true
		}
	}

	var offsets []int
	base := int(today.Weekday())
	for i := 0; i < 7; i++ {
		if selected[(base+i)%7] {
			offsets = append(offsets, i)
		}
	}

	if len(offsets) == 0 {
		return []int{0}
	}

	sort.Ints(offsets)
	return offsets
}
