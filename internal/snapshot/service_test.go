package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/snapshot"
	"github.com/swellwindow/swellwindow/internal/spot"
)

type stubSpots struct {
	spots []*spot.Spot
}

func (s *stubSpots) List(_ context.Context) ([]*spot.Spot, error) {
	return s.spots, nil
}

type stubPresets struct {
	presets map[string][]*preset.Preset
}

func (s *stubPresets) List(_ context.Context, userID string) ([]*preset.Preset, error) {
	return s.presets[userID], nil
}

func newFixture(now time.Time) (*snapshot.Service, *recommendation.Cache, *snapshot.InMemoryRepository) {
	cache := recommendation.NewCache(0)
	repo := snapshot.NewInMemoryRepository()

	svc := snapshot.NewService(snapshot.ServiceConfig{
		Snapshots: repo,
		Spots: &stubSpots{spots: []*spot.Spot{
			{ID: 42, Name: "Scheveningen Noord", Timezone: "Europe/Amsterdam"},
		}},
		Presets: &stubPresets{presets: map[string][]*preset.Preset{
			"user-1": {
				{ID: 1, UserID: "user-1", Name: "Dawn patrol", SpotIDs: []int64{42}},
				{ID: 2, UserID: "user-1", Name: "Weekend", SpotIDs: []int64{42}},
			},
			"user-2": {
				{ID: 3, UserID: "user-2", Name: "Lunch", SpotIDs: []int64{42}},
			},
		}},
		Cache:  cache,
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return now },
	})
	return svc, cache, repo
}

func TestService_Save_FiltersToUserPresets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, cache, repo := newFixture(now)

	cache.Put(1, &recommendation.Set{PresetID: 1}, now)
	cache.Put(3, &recommendation.Set{PresetID: 3}, now)

	require.NoError(t, svc.Save(context.Background(), "user-1"))

	snap, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", snap.UserID)
	assert.Len(t, snap.Spots, 1)
	assert.Len(t, snap.Presets, 2)
	assert.Contains(t, snap.Recommendations, int64(1))
	assert.NotContains(t, snap.Recommendations, int64(3))
	assert.Equal(t, now, snap.CacheTimestamp)
}

func TestService_Load_RestoresCache(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, cache, repo := newFixture(now)

	require.NoError(t, repo.Save(context.Background(), &snapshot.Snapshot{
		UserID: "user-1",
		Recommendations: map[int64]recommendation.Entry{
			1: {Data: &recommendation.Set{PresetID: 1}, FetchedAt: now.Add(-time.Hour)},
		},
		CacheTimestamp: now.Add(-time.Hour),
	}))

	snap, err := svc.Load(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, snap.Recommendations, 1)

	entry, ok := cache.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), entry.Data.PresetID)
	assert.False(t, cache.IsExpired(entry, now))
}

func TestService_Load_ExpiredWholesale(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, cache, repo := newFixture(now)

	require.NoError(t, repo.Save(context.Background(), &snapshot.Snapshot{
		UserID: "user-1",
		Recommendations: map[int64]recommendation.Entry{
			1: {Data: &recommendation.Set{PresetID: 1}, FetchedAt: now.Add(-80 * time.Hour)},
		},
		CacheTimestamp: now.Add(-80 * time.Hour),
	}))

	snap, err := svc.Load(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Recommendations)

	_, ok := cache.Get(1)
	assert.False(t, ok)
}

func TestService_Load_NotFound(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newFixture(now)

	_, err := svc.Load(context.Background(), "unknown")
	assert.ErrorIs(t, err, snapshot.ErrSnapshotNotFound)
}

func TestService_Clear(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, cache, repo := newFixture(now)

	cache.Put(1, &recommendation.Set{PresetID: 1}, now)
	cache.Put(3, &recommendation.Set{PresetID: 3}, now)
	require.NoError(t, svc.Save(context.Background(), "user-1"))

	require.NoError(t, svc.Clear(context.Background(), "user-1"))

	_, err := repo.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, snapshot.ErrSnapshotNotFound)

	_, ok := cache.Get(1)
	assert.False(t, ok)

	// Other users' entries survive.
	_, ok = cache.Get(3)
	assert.True(t, ok)
}
