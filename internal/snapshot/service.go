package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/spot"
)

// SpotLister provides the spot catalogue for snapshot assembly.
type SpotLister interface {
	List(ctx context.Context) ([]*spot.Spot, error)
}

// PresetLister provides a user's presets for snapshot assembly.
type PresetLister interface {
	List(ctx context.Context, userID string) ([]*preset.Preset, error)
}

// ServiceConfig holds dependencies for the snapshot service.
type ServiceConfig struct {
	Snapshots Repository
	Spots     SpotLister
	Presets   PresetLister
	Cache     *recommendation.Cache
	Logger    zerolog.Logger

	// Now returns the current time (optional, for testing).
	Now func() time.Time
}

// Service assembles, persists, and restores per-user snapshots.
type Service struct {
	snapshots Repository
	spots     SpotLister
	presets   PresetLister
	cache     *recommendation.Cache
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a new snapshot service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		snapshots: cfg.Snapshots,
		spots:     cfg.Spots,
		presets:   cfg.Presets,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		now:       now,
	}
}

// Load retrieves a user's snapshot and warms the recommendation cache
// from it. The recommendation section expires wholesale: if the
// capture timestamp is older than the cache TTL, the entries are
// dropped rather than restored, and the returned snapshot carries no
// recommendations.
func (s *Service) Load(ctx context.Context, userID string) (*Snapshot, error) {
	snap, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.now().Sub(snap.CacheTimestamp) > s.cache.TTL() {
		s.logger.Debug().
			Str("user_id", userID).
			Time("cache_timestamp", snap.CacheTimestamp).
			Msg("snapshot recommendations expired, dropping")
		snap.Recommendations = nil
		return snap, nil
	}

	if len(snap.Recommendations) > 0 {
		s.cache.Restore(snap.Recommendations)
	}
	return snap, nil
}

// Save captures the user's current state: the spot catalogue, their
// presets, and whichever of their presets currently have cache
// entries.
func (s *Service) Save(ctx context.Context, userID string) error {
	spots, err := s.spots.List(ctx)
	if err != nil {
		return err
	}

	presets, err := s.presets.List(ctx, userID)
	if err != nil {
		return err
	}

	entries := make(map[int64]recommendation.Entry)
	exported := s.cache.Export()
	for _, p := range presets {
		if entry, ok := exported[p.ID]; ok {
			entries[p.ID] = entry
		}
	}

	now := s.now()
	snap := &Snapshot{
		UserID:          userID,
		Spots:           spots,
		Presets:         presets,
		Recommendations: entries,
		CacheTimestamp:  now,
		UpdatedAt:       now,
	}

	if err := s.snapshots.Save(ctx, snap); err != nil {
		return err
	}

	s.logger.Debug().
		Str("user_id", userID).
		Int("presets", len(presets)).
		Int("cached_entries", len(entries)).
		Msg("snapshot saved")
	return nil
}

// Clear removes the user's snapshot and evicts their presets from the
// recommendation cache. Used on logout.
func (s *Service) Clear(ctx context.Context, userID string) error {
	presets, err := s.presets.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, p := range presets {
		s.cache.Invalidate(p.ID)
	}

	if err := s.snapshots.Delete(ctx, userID); err != nil && !errors.Is(err, ErrSnapshotNotFound) {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("snapshot cleared")
	return nil
}
