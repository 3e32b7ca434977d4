/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package cache defines the read path the engine consults before computing
// a span or session metric. The engine never writes; population of the
// cache is the persistence layer's concern.
package cache

import (
	"context"
	"sync"

	"chainguard.dev/agenteval/metrics"
)

// Reader is the engine-facing cache contract.
type Reader interface {
	// Read returns the cached result for (metricName, sessionID), and
	// whether one was present.
	Read(ctx context.Context, metricName, sessionID string) (*metrics.Result, bool, error)
}

// Memory is an in-memory Reader used in tests and single-process setups.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*metrics.Result
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: map[string]*metrics.Result{}}
}

func key(metricName, sessionID string) string {
	return metricName + "|" + sessionID
}

// Read implements Reader.
func (m *Memory) Read(_ context.Context, metricName, sessionID string) (*metrics.Result, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.entries[key(metricName, sessionID)]
	return result, ok, nil
}

// Put stores a result. Exposed for the cache's owner, not for the engine.
func (m *Memory) Put(metricName, sessionID string, result *metrics.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key(metricName, sessionID)] = result
}
