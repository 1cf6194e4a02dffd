package recommendation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellwindow/swellwindow/internal/recommendation"
)

func newSet(presetID int64) *recommendation.Set {
	return &recommendation.Set{
		PresetID: presetID,
		Spots: []recommendation.SpotDay{
			{
				SpotID:    1,
				DayOffset: 0,
				Hours: []recommendation.Hour{
					{SuitabilityScore: 82, DetailedScores: map[string]float64{"wave_height": 90}},
				},
			},
		},
	}
}

func TestCache_GetPut(t *testing.T) {
	cache := recommendation.NewCache(0)
	now := time.Now()

	_, ok := cache.Get(1)
	assert.False(t, ok)

	cache.Put(1, newSet(1), now)

	e, ok := cache.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), e.Data.PresetID)
	assert.Equal(t, now, e.FetchedAt)
}

func TestCache_IsExpired(t *testing.T) {
	cache := recommendation.NewCache(72 * time.Hour)
	now := time.Now()

	tests := []struct {
		name    string
		age     time.Duration
		expired bool
	}{
		{"age 71h", 71 * time.Hour, false},
		{"age exactly 72h", 72 * time.Hour, false},
		{"age 73h", 73 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &recommendation.Entry{FetchedAt: now.Add(-tt.age)}
			assert.Equal(t, tt.expired, cache.IsExpired(e, now))
		})
	}
}

func TestCache_DefaultTTL(t *testing.T) {
	cache := recommendation.NewCache(0)
	assert.Equal(t, 72*time.Hour, cache.TTL())
}

func TestCache_LastWriteWins(t *testing.T) {
	cache := recommendation.NewCache(0)
	earlier := time.Now().Add(-time.Minute)
	later := time.Now()

	older := newSet(1)
	newer := newSet(1)
	newer.Spots[0].Hours[0].SuitabilityScore = 95

	// The slower request started first but its response lands second;
	// the later-completing write must be what the cache keeps.
	cache.Put(1, older, later)
	cache.Put(1, newer, earlier)

	e, ok := cache.Get(1)
	require.True(t, ok)
	assert.Equal(t, earlier, e.FetchedAt)
	assert.InDelta(t, 95, e.Data.Spots[0].Hours[0].SuitabilityScore, 0.001)
}

func TestCache_Invalidate(t *testing.T) {
	cache := recommendation.NewCache(0)
	now := time.Now()

	cache.Put(1, newSet(1), now)
	cache.Put(2, newSet(2), now)

	cache.Invalidate(1)

	_, ok := cache.Get(1)
	assert.False(t, ok)
	_, ok = cache.Get(2)
	assert.True(t, ok, "other entries untouched")
}

func TestCache_InvalidateAll(t *testing.T) {
	cache := recommendation.NewCache(0)
	now := time.Now()

	for id := int64(1); id <= 5; id++ {
		cache.Put(id, newSet(id), now)
	}

	cache.InvalidateAll()

	assert.Zero(t, cache.Len())
	for id := int64(1); id <= 5; id++ {
		_, ok := cache.Get(id)
		assert.False(t, ok, "preset %d", id)
	}
}

func TestCache_SweepExpired(t *testing.T) {
	cache := recommendation.NewCache(72 * time.Hour)
	now := time.Now()

	cache.Put(1, newSet(1), now.Add(-73*time.Hour))
	cache.Put(2, newSet(2), now.Add(-time.Hour))

	dropped := cache.SweepExpired(now)

	assert.Equal(t, 1, dropped)
	_, ok := cache.Get(1)
	assert.False(t, ok)
	_, ok = cache.Get(2)
	assert.True(t, ok)
}

func TestCache_ExportRestore(t *testing.T) {
	cache := recommendation.NewCache(0)
	now := time.Now()

	cache.Put(1, newSet(1), now)
	cache.Put(2, newSet(2), now)

	exported := cache.Export()
	require.Len(t, exported, 2)

	fresh := recommendation.NewCache(0)
	fresh.Restore(exported)

	e, ok := fresh.Get(2)
	require.True(t, ok)
	assert.Equal(t, int64(2), e.Data.PresetID)
	assert.Equal(t, now, e.FetchedAt)
}
