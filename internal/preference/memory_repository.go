package preference

import (
	"context"
	"sync"
	"time"
)

type prefKey struct {
	userID string
	spotID int64
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production uses the backend client.
type InMemoryRepository struct {
	mu       sync.RWMutex
	prefs    map[prefKey]*SpotPreference
	defaults map[prefKey]*SpotPreference
}

// NewInMemoryRepository creates a new in-memory preference repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		prefs:    make(map[prefKey]*SpotPreference),
		defaults: make(map[prefKey]*SpotPreference),
	}
}

// Get retrieves a saved preference.
func (r *InMemoryRepository) Get(_ context.Context, userID string, spotID int64) (*SpotPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prefs[prefKey{userID, spotID}]
	if !ok {
		return nil, ErrPreferenceNotFound
	}
	cpy := *p
	return &cpy, nil
}

// GetLevelDefault retrieves a level default.
func (r *InMemoryRepository) GetLevelDefault(_ context.Context, userID string, spotID int64) (*SpotPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.defaults[prefKey{userID, spotID}]
	if !ok {
		return nil, ErrDefaultsNotFound
	}
	cpy := *p
	return &cpy, nil
}

// Save persists a preference.
func (r *InMemoryRepository) Save(_ context.Context, userID string, pref *SpotPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *pref
	cpy.UpdatedAt = time.Now()
	r.prefs[prefKey{userID, pref.SpotID}] = &cpy
	return nil
}

// Deactivate clears only the active flag of an existing preference.
func (r *InMemoryRepository) Deactivate(_ context.Context, userID string, spotID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prefs[prefKey{userID, spotID}]
	if !ok {
		return ErrPreferenceNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	return nil
}

// SetLevelDefault seeds a level default for tests.
func (r *InMemoryRepository) SetLevelDefault(userID string, pref *SpotPreference) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cpy := *pref
	r.defaults[prefKey{userID, pref.SpotID}] = &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
