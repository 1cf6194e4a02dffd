package snapshot

import "context"

// Repository defines the interface for snapshot storage.
type Repository interface {
	// Get retrieves the snapshot for a user.
	// Returns ErrSnapshotNotFound if none exists.
	Get(ctx context.Context, userID string) (*Snapshot, error)

	// Save stores a snapshot, replacing any previous one for the user.
	Save(ctx context.Context, snap *Snapshot) error

	// Delete removes the snapshot for a user. Deleting a missing
	// snapshot is not an error.
	Delete(ctx context.Context, userID string) error
}
