package spot

import "context"

// Repository defines read access to spot reference data.
type Repository interface {
	// List retrieves all known spots.
	List(ctx context.Context) ([]*Spot, error)

	// Get retrieves a spot by ID.
	// Returns ErrSpotNotFound if the spot doesn't exist.
	Get(ctx context.Context, id int64) (*Spot, error)
}
