// Package spot provides surf spot reference data.
package spot

import "errors"

// Repository errors.
var (
	ErrSpotNotFound = errors.New("spot not found")
)

// Spot represents a surf break. Spots are reference data owned by the
// backend; this service only reads them.
type Spot struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}
