package preference

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ChangeListener is notified after a preference for a spot has been
// successfully saved or deactivated. Implemented by the recommendation
// orchestrator; listener work runs in the background and its outcome
// never affects the save.
type ChangeListener interface {
	HandlePreferenceChange(ctx context.Context, userID string, spotID int64)
}

// ServiceConfig holds configuration for the preference service.
type ServiceConfig struct {
	// Repo is the preference store.
	Repo Repository

	// Listener receives change notifications after successful saves.
	// Optional.
	Listener ChangeListener

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service provides preference resolution and persistence.
type Service struct {
	repo     Repository
	listener ChangeListener
	logger   zerolog.Logger
}

// NewService creates a new preference service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:     cfg.Repo,
		listener: cfg.Listener,
		logger:   cfg.Logger,
	}
}

// Resolve returns the preference to present for a user/spot pair.
// A saved preference wins; otherwise the user's level default is
// returned with UsingDefaults set and the active flag forced on. When
// neither exists the result is an empty active record with NoDefaults
// set, so the user can still fill the form from scratch. Only transport
// failures surface as errors.
func (s *Service) Resolve(ctx context.Context, userID string, spotID int64) (*Resolution, error) {
	pref, err := s.repo.Get(ctx, userID, spotID)
	if err == nil {
		return &Resolution{Preference: pref}, nil
	}
	if !errors.Is(err, ErrPreferenceNotFound) {
		return nil, fmt.Errorf("get preference: %w", err)
	}

	def, err := s.repo.GetLevelDefault(ctx, userID, spotID)
	if err == nil {
		def.SpotID = spotID
		def.IsActive = true
		return &Resolution{Preference: def, UsingDefaults: true}, nil
	}
	if !errors.Is(err, ErrDefaultsNotFound) {
		return nil, fmt.Errorf("get level default: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Int64("spot_id", spotID).
		Msg("no saved preference and no level default")

	return &Resolution{
		Preference: &SpotPreference{SpotID: spotID, IsActive: true},
		NoDefaults: true,
	}, nil
}

// Save persists a preference edit. When the edit only toggles the
// record off and the user was editing a previously saved record (not
// defaults), a narrow deactivate update is issued so the stored bands
// survive. Any other edit persists the full recognized field set.
// After a successful write the change listener is notified so dependent
// recommendation caches can refresh in the background.
func (s *Service) Save(ctx context.Context, userID string, pref *SpotPreference, usingDefaults bool) error {
	if !pref.IsActive && !usingDefaults {
		if err := s.repo.Deactivate(ctx, userID, pref.SpotID); err != nil {
			return fmt.Errorf("deactivate preference: %w", err)
		}
	} else {
		if err := s.repo.Save(ctx, userID, pref); err != nil {
			return fmt.Errorf("save preference: %w", err)
		}
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("spot_id", pref.SpotID).
		Bool("is_active", pref.IsActive).
		Msg("preference saved")

	if s.listener != nil {
		s.listener.HandlePreferenceChange(ctx, userID, pref.SpotID)
	}

	return nil
}
