package preset

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"
)

// Validation constants.
const (
	MaxNameLength = 60
	MaxSpots      = 20
)

// timeUTCRegex validates "HH:mm:ss" with optional seconds.
var timeUTCRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// ServiceConfig holds configuration for the preset service.
type ServiceConfig struct {
	// Repo is the preset store.
	Repo Repository

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service provides preset CRUD with validation and client-side
// enforcement of the single-default invariant.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new preset service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{repo: cfg.Repo, logger: cfg.Logger}
}

// List retrieves all presets for a user.
func (s *Service) List(ctx context.Context, userID string) ([]*Preset, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get retrieves a preset owned by the user.
func (s *Service) Get(ctx context.Context, userID string, presetID int64) (*Preset, error) {
	return s.repo.GetByUserAndID(ctx, userID, presetID)
}

// Create validates and persists a new preset. A user's first preset is
// always made the default; otherwise a newly created default demotes
// the previous one.
func (s *Service) Create(ctx context.Context, userID string, p *Preset) (*Preset, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	p.UserID = userID
	p.IsActive = true

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	if len(existing) == 0 {
		p.IsDefault = true
	}

	normalizeTimes(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create preset: %w", err)
	}

	if p.IsDefault {
		s.demoteOtherDefaults(ctx, userID, p.ID)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("preset_id", p.ID).
		Bool("is_default", p.IsDefault).
		Msg("preset created")

	return p, nil
}

// Update validates and persists changes to a preset.
func (s *Service) Update(ctx context.Context, userID string, p *Preset) (*Preset, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByUserAndID(ctx, userID, p.ID)
	if err != nil {
		return nil, err
	}

	p.UserID = userID
	normalizeTimes(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update preset: %w", err)
	}

	if p.IsDefault && !current.IsDefault {
		s.demoteOtherDefaults(ctx, userID, p.ID)
	}

	return p, nil
}

// Delete removes a preset. The earliest-created preset (lowest ID among
// the user's presets) is protected from deletion. When the deleted
// preset was the default, the earliest remaining preset becomes the
// default.
func (s *Service) Delete(ctx context.Context, userID string, presetID int64) error {
	presets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}

	var target *Preset
	lowestID := int64(0)
	for _, p := range presets {
		if lowestID == 0 || p.ID < lowestID {
			lowestID = p.ID
		}
		if p.ID == presetID {
			target = p
		}
	}
	if target == nil {
		return ErrPresetNotFound
	}
	if presetID == lowestID {
		return ErrProtectedPreset
	}

	if err := s.repo.Delete(ctx, userID, presetID); err != nil {
		return err
	}

	if target.IsDefault {
		for _, p := range presets {
			if p.ID == lowestID {
				p.IsDefault = true
				if err := s.repo.Update(ctx, p); err != nil {
					s.logger.Warn().Err(err).
						Int64("preset_id", p.ID).
						Msg("failed to reassign default preset")
				}
				break
			}
		}
	}

	return nil
}

// demoteOtherDefaults re-reads the user's presets and clears the default
// flag everywhere except keepID. The backend does not guarantee this
// atomically, so the re-verification runs after every default change;
// a concurrent edit can still leave two defaults briefly.
func (s *Service) demoteOtherDefaults(ctx context.Context, userID string, keepID int64) {
	presets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to verify default presets")
		return
	}

	for _, p := range presets {
		if p.ID == keepID || !p.IsDefault {
			continue
		}
		p.IsDefault = false
		if err := s.repo.Update(ctx, p); err != nil {
			s.logger.Warn().Err(err).
				Int64("preset_id", p.ID).
				Msg("failed to demote default preset")
		}
	}
}

// validate checks a preset and returns a ValidationError describing
// every failing field.
func validate(p *Preset) error {
	var fields []FieldError

	if p.Name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "is required"})
	} else if len(p.Name) > MaxNameLength {
		fields = append(fields, FieldError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxNameLength)})
	}

	if len(p.SpotIDs) == 0 {
		fields = append(fields, FieldError{Field: "spot_ids", Message: "at least one spot is required"})
	} else if len(p.SpotIDs) > MaxSpots {
		fields = append(fields, FieldError{Field: "spot_ids", Message: fmt.Sprintf("at most %d spots allowed", MaxSpots)})
	}

	switch p.DaySelection {
	case DaySelectionOffsets:
		if len(p.DayValues) == 0 {
			fields = append(fields, FieldError{Field: "day_values", Message: "at least one day offset is required"})
		}
		for _, v := range p.DayValues {
			if v < 0 || v > 6 {
				fields = append(fields, FieldError{Field: "day_values", Message: "day offsets must be between 0 and 6"})
				break
			}
		}
	case DaySelectionWeekdays:
		// An empty weekday set is allowed and resolves to today at
		// request-build time.
		for _, v := range p.DayValues {
			if v < 0 || v > 6 {
				fields = append(fields, FieldError{Field: "day_values", Message: "weekdays must be between 0 and 6"})
				break
			}
		}
	default:
		fields = append(fields, FieldError{Field: "day_selection_type", Message: `must be "offsets" or "weekdays"`})
	}

	if !timeUTCRegex.MatchString(p.StartTimeUTC) {
		fields = append(fields, FieldError{Field: "start_time", Message: "must be HH:mm:ss"})
	}
	if !timeUTCRegex.MatchString(p.EndTimeUTC) {
		fields = append(fields, FieldError{Field: "end_time", Message: "must be HH:mm:ss"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// normalizeTimes appends ":00" seconds to bare "HH:mm" time windows so
// stored values are always "HH:mm:ss".
func normalizeTimes(p *Preset) {
	if len(p.StartTimeUTC) == 5 {
		p.StartTimeUTC += ":00"
	}
	if len(p.EndTimeUTC) == 5 {
		p.EndTimeUTC += ":00"
	}
}
