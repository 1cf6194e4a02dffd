package models

import "github.com/swellwindow/swellwindow/internal/spot"

// Spot represents a surf spot in API responses.
type Spot struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}

// SpotList is the response for the spot catalogue.
type SpotList struct {
	Spots []Spot `json:"spots"`
}

// NewSpot converts a domain spot to its API representation.
func NewSpot(s *spot.Spot) Spot {
	return Spot{
		ID:       s.ID,
		Name:     s.Name,
		Lat:      s.Lat,
		Lon:      s.Lon,
		Timezone: s.Timezone,
	}
}

// NewSpotList converts domain spots to an API spot list.
func NewSpotList(spots []*spot.Spot) SpotList {
	out := SpotList{Spots: make([]Spot, 0, len(spots))}
	for _, s := range spots {
		out.Spots = append(out.Spots, NewSpot(s))
	}
	return out
}
