/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package tracestore

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/agenteval/spans"
)

// TimeRange bounds a batch query. Times are ISO 8601 UTC strings, the
// format the store speaks natively.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BatchConfig selects which sessions a computation run covers. Exactly
// one selector must be set.
type BatchConfig struct {
	NumSessions int        `json:"num_sessions,omitempty"`
	TimeRange   *TimeRange `json:"time_range,omitempty"`
}

// ErrBatchMode is returned when a BatchConfig does not select exactly
// one batch mode.
var ErrBatchMode = errors.New("exactly one of num_sessions or time_range must be set")

// Validate checks that exactly one batch selector is set.
func (b BatchConfig) Validate() error {
	set := 0
	if b.NumSessions > 0 {
		set++
	}
	if b.TimeRange != nil {
		set++
	}
	if set != 1 {
		return ErrBatchMode
	}
	return nil
}

// Fetch retrieves the raw spans the config selects, keyed by session id.
func (c *Client) Fetch(ctx context.Context, cfg BatchConfig) (map[string][]spans.RawSpan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch config: %w", err)
	}
	if cfg.TimeRange != nil {
		return c.TracesByTime(ctx, cfg.TimeRange.Start, cfg.TimeRange.End)
	}
	return c.LastNSessions(ctx, cfg.NumSessions)
}
