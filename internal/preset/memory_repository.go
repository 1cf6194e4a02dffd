package preset

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production uses the backend client.
type InMemoryRepository struct {
	mu      sync.RWMutex
	presets map[int64]*Preset
	nextID  int64
}

// NewInMemoryRepository creates a new in-memory preset repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		presets: make(map[int64]*Preset),
		nextID:  1,
	}
}

// GetByUserAndID retrieves a preset owned by the user.
func (r *InMemoryRepository) GetByUserAndID(_ context.Context, userID string, presetID int64) (*Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.presets[presetID]
	if !ok || p.UserID != userID {
		return nil, ErrPresetNotFound
	}
	cpy := clonePreset(p)
	return cpy, nil
}

// ListByUser retrieves all presets for a user ordered by ID.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Preset
	for _, p := range r.presets {
		if p.UserID == userID {
			out = append(out, clonePreset(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create persists a new preset and assigns its ID.
func (r *InMemoryRepository) Create(_ context.Context, p *Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.presets[p.ID] = clonePreset(p)
	return nil
}

// Update persists changes to an existing preset.
func (r *InMemoryRepository) Update(_ context.Context, p *Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.presets[p.ID]
	if !ok || existing.UserID != p.UserID {
		return ErrPresetNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	r.presets[p.ID] = clonePreset(p)
	return nil
}

// Delete removes a preset.
func (r *InMemoryRepository) Delete(_ context.Context, userID string, presetID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.presets[presetID]
	if !ok || p.UserID != userID {
		return ErrPresetNotFound
	}
	delete(r.presets, presetID)
	return nil
}

func clonePreset(p *Preset) *Preset {
	cpy := *p
	cpy.SpotIDs = append([]int64(nil), p.SpotIDs...)
	cpy.DayValues = append([]int(nil), p.DayValues...)
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
