// Package worker provides background job processing for SwellWindow.
package worker

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RefreshConfig holds configuration for the cache warm-up job.
type RefreshConfig struct {
	// UserIDs are the users whose presets get warmed.
	// Typically the most active accounts, supplied via WARMUP_USER_IDS.
	UserIDs []string

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each preset refresh.
	// Default: 30 seconds
	Timeout time.Duration

	// IncludeInactive also warms presets the user has switched off.
	// Default: false
	IncludeInactive bool
}

// DefaultRefreshConfig returns the default warm-up configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// RefreshConfigFromEnv builds a RefreshConfig from environment variables.
//
//	WARMUP_USER_IDS      comma-separated user IDs to warm
//	WARMUP_CONCURRENCY   number of concurrent refreshes
//	WARMUP_TIMEOUT_SECS  per-preset timeout in seconds
func RefreshConfigFromEnv() RefreshConfig {
	cfg := DefaultRefreshConfig()

	if raw := os.Getenv("WARMUP_USER_IDS"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.UserIDs = append(cfg.UserIDs, id)
			}
		}
	}
	if raw := os.Getenv("WARMUP_CONCURRENCY"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
	if raw := os.Getenv("WARMUP_TIMEOUT_SECS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}

	return cfg
}
