package recommendation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/swellwindow/swellwindow/internal/preset"
)

// Provider defines the external recommendation endpoint.
type Provider interface {
	// GetRecommendations fetches ranked recommendations for a request.
	GetRecommendations(ctx context.Context, req *Request) (*Set, error)

	// Name returns the provider name for logging.
	Name() string
}

// PresetLister is the slice of the preset store the orchestrator needs
// to discover presets affected by a preference change.
type PresetLister interface {
	ListByUser(ctx context.Context, userID string) ([]*preset.Preset, error)
}

// ServiceConfig holds configuration for the recommendation service.
type ServiceConfig struct {
	// Provider is the recommendation endpoint client.
	Provider Provider

	// Presets is used to find presets referencing a changed spot.
	Presets PresetLister

	// Cache stores fetched recommendation sets. Required.
	Cache *Cache

	// Events receives cache lifecycle notifications. Optional.
	Events *Broadcaster

	// Logger for service operations.
	Logger zerolog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service serves recommendations from the cache and orchestrates
// invalidation and background refresh when preferences change.
type Service struct {
	provider Provider
	presets  PresetLister
	cache    *Cache
	events   *Broadcaster
	logger   zerolog.Logger
	now      func() time.Time

	inflight sync.WaitGroup
}

// NewService creates a new recommendation service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	events := cfg.Events
	if events == nil {
		events = NewBroadcaster()
	}

	return &Service{
		provider: cfg.Provider,
		presets:  cfg.Presets,
		cache:    cfg.Cache,
		events:   events,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Events returns the broadcaster for cache lifecycle notifications.
func (s *Service) Events() *Broadcaster {
	return s.events
}

// GetForPreset returns recommendations for a preset, serving the cached
// set while it is within the TTL and fetching synchronously otherwise.
// The second return value reports whether the set came from the cache.
func (s *Service) GetForPreset(ctx context.Context, p *preset.Preset) (*Set, bool, error) {
	if e, ok := s.cache.Get(p.ID); ok && !s.cache.IsExpired(e, s.now()) {
		return e.Data, true, nil
	}
	set, err := s.Refresh(ctx, p)
	return set, false, err
}

// Refresh fetches recommendations for a preset from the backend,
// bypassing the cache, and stores the result.
func (s *Service) Refresh(ctx context.Context, p *preset.Preset) (*Set, error) {
	req := BuildRequest(p, s.now())

	set, err := s.provider.GetRecommendations(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("preset_id", p.ID).
			Str("provider", s.provider.Name()).
			Msg("failed to fetch recommendations")
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	now := s.now()
	set.PresetID = p.ID
	set.FetchedAt = now
	s.cache.Put(p.ID, set, now)
	s.events.Publish(Event{Type: EventEntryUpdated, PresetID: p.ID, At: now})

	return set, nil
}

// HandlePreferenceChange runs the invalidation/refresh fan-out for a
// preference save on one spot: every preset of the user that references
// the spot has its cache entry dropped immediately, then refetches in
// its own background task. Tasks are independent: one failure neither
// cancels nor blocks the others, and nothing propagates back to the
// save that triggered the change. No-op when no preset references the
// spot.
func (s *Service) HandlePreferenceChange(ctx context.Context, userID string, spotID int64) {
	presets, err := s.presets.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", userID).
			Int64("spot_id", spotID).
			Msg("failed to list presets for invalidation")
		return
	}

	var affected []*preset.Preset
	for _, p := range presets {
		if p.ReferencesSpot(spotID) {
			affected = append(affected, p)
		}
	}
	if len(affected) == 0 {
		return
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("spot_id", spotID).
		Int("affected_presets", len(affected)).
		Msg("invalidating recommendation caches")

	// Refetches outlive the triggering request; there is no
	// cancellation. A newer fan-out for the same preset simply
	// overwrites this one's eventual cache write.
	bg := context.WithoutCancel(ctx)

	for _, p := range affected {
		s.cache.Invalidate(p.ID)
		s.events.Publish(Event{Type: EventEntryRemoved, PresetID: p.ID, At: s.now()})

		s.inflight.Add(1)
		go func(p *preset.Preset) {
			defer s.inflight.Done()
			s.refetch(bg, p)
		}(p)
	}
}

// refetch is one background refresh task for one preset. Failures are
// swallowed apart from a log line and a notification: the entry was
// already invalidated and stays absent.
func (s *Service) refetch(ctx context.Context, p *preset.Preset) {
	req := BuildRequest(p, s.now())

	set, err := s.provider.GetRecommendations(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("preset_id", p.ID).
			Msg("background refresh failed")
		s.events.Publish(Event{Type: EventEntryFailed, PresetID: p.ID, At: s.now()})
		return
	}

	now := s.now()
	set.PresetID = p.ID
	set.FetchedAt = now
	s.cache.Put(p.ID, set, now)
	s.events.Publish(Event{Type: EventEntryUpdated, PresetID: p.ID, At: now})
}

// Wait blocks until all in-flight background refetches have finished.
// Used to drain tasks on shutdown.
func (s *Service) Wait() {
	s.inflight.Wait()
}
