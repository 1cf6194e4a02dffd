package preset

import "context"

// Repository defines the interface for preset persistence. In
// production this is backed by the backend's preset storage endpoint,
// whose single-default-per-user invariant is not assumed to be atomic.
type Repository interface {
	// GetByUserAndID retrieves a preset owned by the user.
	// Returns ErrPresetNotFound if it doesn't exist or belongs to
	// someone else.
	GetByUserAndID(ctx context.Context, userID string, presetID int64) (*Preset, error)

	// ListByUser retrieves all presets for a user.
	ListByUser(ctx context.Context, userID string) ([]*Preset, error)

	// Create persists a new preset and assigns its ID.
	Create(ctx context.Context, p *Preset) error

	// Update persists changes to an existing preset.
	Update(ctx context.Context, p *Preset) error

	// Delete removes a preset.
	Delete(ctx context.Context, userID string, presetID int64) error
}
