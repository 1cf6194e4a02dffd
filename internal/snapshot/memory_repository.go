package snapshot

import (
	"context"
	"sync"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/spot"
)

// InMemoryRepository is an in-memory implementation of Repository for
// development and testing.
type InMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewInMemoryRepository creates a new in-memory snapshot repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		snapshots: make(map[string]*Snapshot),
	}
}

// Get retrieves the snapshot for a user.
func (r *InMemoryRepository) Get(_ context.Context, userID string) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.snapshots[userID]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return cloneSnapshot(snap), nil
}

// Save stores a snapshot, replacing any previous one for the user.
func (r *InMemoryRepository) Save(_ context.Context, snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snap.UserID] = cloneSnapshot(snap)
	return nil
}

// Delete removes the snapshot for a user.
func (r *InMemoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snapshots, userID)
	return nil
}

func cloneSnapshot(snap *Snapshot) *Snapshot {
	clone := *snap

	if snap.Spots != nil {
		clone.Spots = make([]*spot.Spot, len(snap.Spots))
		for i, s := range snap.Spots {
			c := *s
			clone.Spots[i] = &c
		}
	}

	if snap.Presets != nil {
		clone.Presets = make([]*preset.Preset, len(snap.Presets))
		for i, p := range snap.Presets {
			c := *p
			c.SpotIDs = append([]int64(nil), p.SpotIDs...)
			c.DayValues = append([]int(nil), p.DayValues...)
			clone.Presets[i] = &c
		}
	}

	if snap.Recommendations != nil {
		clone.Recommendations = make(map[int64]recommendation.Entry, len(snap.Recommendations))
		for id, entry := range snap.Recommendations {
			clone.Recommendations[id] = entry
		}
	}

	return &clone
}
