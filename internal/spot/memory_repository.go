package spot

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production reads spots from the backend.
type InMemoryRepository struct {
	mu    sync.RWMutex
	spots map[int64]*Spot
}

// NewInMemoryRepository creates a new in-memory spot repository.
func NewInMemoryRepository(spots ...*Spot) *InMemoryRepository {
	r := &InMemoryRepository{spots: make(map[int64]*Spot)}
	for _, s := range spots {
		cpy := *s
		r.spots[s.ID] = &cpy
	}
	return r
}

// List retrieves all spots ordered by ID.
func (r *InMemoryRepository) List(_ context.Context) ([]*Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Spot, 0, len(r.spots))
	for _, s := range r.spots {
		cpy := *s
		out = append(out, &cpy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get retrieves a spot by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	cpy := *s
	return &cpy, nil
}

// Put stores a spot, replacing any existing entry with the same ID.
func (r *InMemoryRepository) Put(s *Spot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cpy := *s
	r.spots[s.ID] = &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
