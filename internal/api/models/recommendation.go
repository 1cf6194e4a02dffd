package models

import (
	"github.com/swellwindow/swellwindow/internal/recommendation"
)

// RecommendationSet is the API representation of a preset's ranked
// recommendations. The set embeds the domain payload as-is; only cache
// provenance is added.
type RecommendationSet struct {
	PresetID  int64                    `json:"preset_id"`
	Spots     []recommendation.SpotDay `json:"spots"`
	FetchedAt Timestamp                `json:"fetched_at"`

	// FromCache is true when the set was served from the local cache
	// without contacting the backend.
	FromCache bool `json:"from_cache"`
}

// NewRecommendationSet converts a domain set to its API
// representation.
func NewRecommendationSet(set *recommendation.Set, fromCache bool) RecommendationSet {
	return RecommendationSet{
		PresetID:  set.PresetID,
		Spots:     set.Spots,
		FetchedAt: Timestamp(set.FetchedAt),
		FromCache: fromCache,
	}
}
