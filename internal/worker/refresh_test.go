package worker_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/worker"
)

type stubLister struct {
	presets map[string][]*preset.Preset
	err     error
}

func (s *stubLister) List(_ context.Context, userID string) ([]*preset.Preset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.presets[userID], nil
}

type stubRefresher struct {
	mu      sync.Mutex
	ids     []int64
	failIDs map[int64]bool
}

func (s *stubRefresher) Refresh(_ context.Context, p *preset.Preset) (*recommendation.Set, error) {
	s.mu.Lock()
	s.ids = append(s.ids, p.ID)
	s.mu.Unlock()

	if s.failIDs[p.ID] {
		return nil, errors.New("backend unavailable")
	}
	return &recommendation.Set{PresetID: p.ID, FetchedAt: time.Now()}, nil
}

func (s *stubRefresher) refreshedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]int64(nil), s.ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func testPreset(id int64, userID string, active bool) *preset.Preset {
	return &preset.Preset{
		ID:           id,
		UserID:       userID,
		Name:         "Morning",
		SpotIDs:      []int64{1},
		StartTimeUTC: "06:00:00",
		EndTimeUTC:   "09:00:00",
		DaySelection: "offsets",
		DayValues:    []int{0, 1},
		IsActive:     active,
	}
}

func TestDefaultRefreshConfig(t *testing.T) {
	cfg := worker.DefaultRefreshConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.IncludeInactive)
	assert.Empty(t, cfg.UserIDs)
}

func TestRefreshConfigFromEnv(t *testing.T) {
	t.Setenv("WARMUP_USER_IDS", "usr_a, usr_b ,,usr_c")
	t.Setenv("WARMUP_CONCURRENCY", "5")
	t.Setenv("WARMUP_TIMEOUT_SECS", "10")

	cfg := worker.RefreshConfigFromEnv()

	assert.Equal(t, []string{"usr_a", "usr_b", "usr_c"}, cfg.UserIDs)
	assert.Equal(t, 5, cfg.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestRefreshJob_Run_WarmsActivePresets(t *testing.T) {
	lister := &stubLister{presets: map[string][]*preset.Preset{
		"usr_a": {
			testPreset(1, "usr_a", true),
			testPreset(2, "usr_a", true),
			testPreset(3, "usr_a", false),
		},
		"usr_b": {
			testPreset(4, "usr_b", true),
		},
	}}
	refresher := &stubRefresher{}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:          worker.RefreshConfig{UserIDs: []string{"usr_a", "usr_b"}},
		Logger:          zerolog.Nop(),
		Presets:         lister,
		Recommendations: refresher,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 3, result.TotalPresets)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []int64{1, 2, 4}, refresher.refreshedIDs())
}

func TestRefreshJob_Run_IncludeInactive(t *testing.T) {
	lister := &stubLister{presets: map[string][]*preset.Preset{
		"usr_a": {
			testPreset(1, "usr_a", true),
			testPreset(2, "usr_a", false),
		},
	}}
	refresher := &stubRefresher{}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			UserIDs:         []string{"usr_a"},
			IncludeInactive: true,
		},
		Logger:          zerolog.Nop(),
		Presets:         lister,
		Recommendations: refresher,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, []int64{1, 2}, refresher.refreshedIDs())
}

func TestRefreshJob_Run_CountsFailures(t *testing.T) {
	lister := &stubLister{presets: map[string][]*preset.Preset{
		"usr_a": {
			testPreset(1, "usr_a", true),
			testPreset(2, "usr_a", true),
		},
	}}
	refresher := &stubRefresher{failIDs: map[int64]bool{2: true}}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:          worker.RefreshConfig{UserIDs: []string{"usr_a"}},
		Logger:          zerolog.Nop(),
		Presets:         lister,
		Recommendations: refresher,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, int64(2), result.Errors[0].PresetID)
	assert.Equal(t, "usr_a", result.Errors[0].UserID)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(1), metrics.PresetsRefreshed)
	assert.Equal(t, int64(1), metrics.FailedRefreshes)
}

func TestRefreshJob_Run_ListerError(t *testing.T) {
	lister := &stubLister{err: errors.New("backend down")}
	refresher := &stubRefresher{}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:          worker.RefreshConfig{UserIDs: []string{"usr_a"}},
		Logger:          zerolog.Nop(),
		Presets:         lister,
		Recommendations: refresher,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 0, result.TotalPresets)
	assert.Empty(t, refresher.refreshedIDs())
}

func TestRefreshJob_SweepExpired(t *testing.T) {
	cache := recommendation.NewCache(72 * time.Hour)
	now := time.Now()
	cache.Put(1, &recommendation.Set{PresetID: 1}, now.Add(-80*time.Hour))
	cache.Put(2, &recommendation.Set{PresetID: 2}, now)

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger: zerolog.Nop(),
		Cache:  cache,
	})

	removed := job.SweepExpired(now)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, int64(1), job.GetMetrics().EntriesSwept)
}

func TestRefreshJob_SweepExpired_NoCache(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{Logger: zerolog.Nop()})
	assert.Equal(t, 0, job.SweepExpired(time.Now()))
}

func TestMetricsSnapshot(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{Logger: zerolog.Nop()})

	snapshot := job.MetricsSnapshot()

	assert.Contains(t, snapshot, "total_runs")
	assert.Contains(t, snapshot, "presets_refreshed")
	assert.Contains(t, snapshot, "entries_swept")
}
