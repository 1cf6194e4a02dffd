package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
)

// PresetLister provides the presets to warm for a user.
type PresetLister interface {
	List(ctx context.Context, userID string) ([]*preset.Preset, error)
}

// Refresher fetches fresh recommendations for a preset and caches them.
type Refresher interface {
	Refresh(ctx context.Context, p *preset.Preset) (*recommendation.Set, error)
}

// RefreshJob warms the recommendation cache for configured users.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	presets         PresetLister
	recommendations Refresher
	cache           *recommendation.Cache

	metrics *RefreshMetrics
}

// RefreshMetrics tracks warm-up job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns        int64
	PresetsRefreshed int64
	FailedRefreshes  int64
	EntriesSwept     int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config          RefreshConfig
	Logger          zerolog.Logger
	Presets         PresetLister
	Recommendations Refresher
	Cache           *recommendation.Cache
}

// NewRefreshJob creates a new warm-up job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultRefreshConfig().Concurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRefreshConfig().Timeout
	}

	return &RefreshJob{
		config:          config,
		logger:          cfg.Logger,
		presets:         cfg.Presets,
		recommendations: cfg.Recommendations,
		cache:           cfg.Cache,
		metrics:         &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a warm-up run.
type RefreshResult struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalPresets int
	Successful   int
	Failed       int
	Errors       []RefreshError
}

// RefreshError represents an error during warm-up.
type RefreshError struct {
	UserID   string
	PresetID int64
	Error    string
}

// Run executes the warm-up job for all configured users.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{StartTime: startTime}

	presets := j.collectPresets(ctx)
	result.TotalPresets = len(presets)

	j.logger.Info().
		Int("presets", result.TotalPresets).
		Int("concurrency", j.config.Concurrency).
		Msg("starting cache warm-up job")

	presetsChan := make(chan *preset.Preset, len(presets))
	resultsChan := make(chan presetResult, len(presets))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, presetsChan, resultsChan)
		}()
	}

	for _, p := range presets {
		presetsChan <- p
	}
	close(presetsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for pr := range resultsChan {
		if pr.err == nil {
			result.Successful++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				UserID:   pr.preset.UserID,
				PresetID: pr.preset.ID,
				Error:    pr.err.Error(),
			})
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("cache warm-up job completed")

	return result
}

func (j *RefreshJob) collectPresets(ctx context.Context) []*preset.Preset {
	var out []*preset.Preset
	for _, userID := range j.config.UserIDs {
		presets, err := j.presets.List(ctx, userID)
		if err != nil {
			j.logger.Error().Err(err).Str("user_id", userID).Msg("listing presets for warm-up")
			continue
		}
		for _, p := range presets {
			if !p.IsActive && !j.config.IncludeInactive {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

type presetResult struct {
	preset *preset.Preset
	err    error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, presets <-chan *preset.Preset, results chan<- presetResult) {
	for p := range presets {
		select {
		case <-ctx.Done():
			return
		default:
			results <- presetResult{preset: p, err: j.refreshPreset(ctx, p)}
		}
	}
}

func (j *RefreshJob) refreshPreset(ctx context.Context, p *preset.Preset) error {
	presetCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	_, err := j.recommendations.Refresh(presetCtx, p)
	return err
}

// SweepExpired drops expired entries from the recommendation cache and
// returns how many were removed.
func (j *RefreshJob) SweepExpired(now time.Time) int {
	if j.cache == nil {
		return 0
	}

	removed := j.cache.SweepExpired(now)

	j.metrics.mu.Lock()
	j.metrics.EntriesSwept += int64(removed)
	j.metrics.mu.Unlock()

	j.logger.Info().
		Int("removed", removed).
		Int("remaining", j.cache.Len()).
		Msg("cache sweep completed")

	return removed
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.PresetsRefreshed += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:        j.metrics.TotalRuns,
		PresetsRefreshed: j.metrics.PresetsRefreshed,
		FailedRefreshes:  j.metrics.FailedRefreshes,
		EntriesSwept:     j.metrics.EntriesSwept,
		LastRunAt:        j.metrics.LastRunAt,
		LastRunDuration:  j.metrics.LastRunDuration,
		TotalDuration:    j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"presets_refreshed": m.PresetsRefreshed,
		"failed_refreshes":  m.FailedRefreshes,
		"entries_swept":     m.EntriesSwept,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
