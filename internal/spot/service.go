package spot

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the spot service.
type ServiceConfig struct {
	// Repo is the spot data source.
	Repo Repository

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache the spot list (default: 1 hour).
	// Spots change rarely, so a long cache is acceptable.
	CacheTTL time.Duration
}

// Service provides spot reference data with caching.
type Service struct {
	repo     Repository
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu        sync.RWMutex
	cached    []*Spot
	byID      map[int64]*Spot
	fetchedAt time.Time
}

// NewService creates a new spot service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	return &Service{
		repo:     cfg.Repo,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
	}
}

// List returns all known spots, from cache when fresh.
func (s *Service) List(ctx context.Context) ([]*Spot, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		out := s.cached
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	return s.refresh(ctx)
}

// Get returns a single spot by ID, from cache when fresh.
func (s *Service) Get(ctx context.Context, id int64) (*Spot, error) {
	s.mu.RLock()
	if s.byID != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		sp, ok := s.byID[id]
		s.mu.RUnlock()
		if !ok {
			return nil, ErrSpotNotFound
		}
		return sp, nil
	}
	s.mu.RUnlock()

	if _, err := s.refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.byID[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	return sp, nil
}

func (s *Service) refresh(ctx context.Context) ([]*Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache
	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		return s.cached, nil
	}

	spots, err := s.repo.List(ctx)
	if err != nil {
		if s.cached != nil {
			s.logger.Warn().Err(err).Msg("serving stale spot list due to backend error")
			return s.cached, nil
		}
		return nil, err
	}

	byID := make(map[int64]*Spot, len(spots))
	for _, sp := range spots {
		byID[sp.ID] = sp
	}

	s.cached = spots
	s.byID = byID
	s.fetchedAt = time.Now()

	s.logger.Debug().Int("spots", len(spots)).Msg("refreshed spot list")
	return spots, nil
}
