/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the engine knobs.
type Config struct {
	// MaxConcurrency bounds the number of simultaneously in-flight metric
	// computations. Zero means unbounded: every applicable task launches
	// at once.
	MaxConcurrency int `env:"MCE_MAX_CONCURRENCY, default=0"`

	// CacheEnabled controls whether the result cache is consulted before
	// computing span and session metrics.
	CacheEnabled bool `env:"MCE_CACHE_ENABLED, default=true"`
}

// ConfigFromEnv loads the engine configuration from the environment.
func ConfigFromEnv(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing engine config: %w", err)
	}
	return cfg, nil
}
