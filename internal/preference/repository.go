package preference

import "context"

// Repository defines the interface for preference persistence. In
// production this is backed by the backend's preference storage
// endpoint.
type Repository interface {
	// Get retrieves the user's saved preference for a spot.
	// Returns ErrPreferenceNotFound if none has been saved.
	Get(ctx context.Context, userID string, spotID int64) (*SpotPreference, error)

	// GetLevelDefault retrieves the read-only default preference for the
	// user's declared skill level.
	// Returns ErrDefaultsNotFound if no default exists.
	GetLevelDefault(ctx context.Context, userID string, spotID int64) (*SpotPreference, error)

	// Save persists the full recognized field set of a preference.
	Save(ctx context.Context, userID string, pref *SpotPreference) error

	// Deactivate clears only the active flag of a saved preference,
	// leaving the stored bands untouched.
	Deactivate(ctx context.Context, userID string, spotID int64) error
}
