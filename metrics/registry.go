/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import "fmt"

// Registry maps metric names to implementations. It is a pure lookup table:
// no execution logic lives here. Registration is strict: a duplicate name
// or a metric whose declared level does not match its implemented interface
// is rejected immediately, never deferred.
type Registry struct {
	metrics map[string]Metric
	names   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{metrics: map[string]Metric{}}
}

// Register adds a metric to the registry.
func (r *Registry) Register(m Metric) error {
	name := m.Name()
	if name == "" {
		return fmt.Errorf("metric has no name")
	}
	if _, exists := r.metrics[name]; exists {
		return fmt.Errorf("metric %q already registered", name)
	}

	// Structural check: the declared level must be backed by the matching
	// compute interface.
	switch level := m.Level(); level {
	case LevelSpan:
		if _, ok := m.(SpanMetric); !ok {
			return fmt.Errorf("metric %q declares level %q but does not implement SpanMetric", name, level)
		}
	case LevelSession:
		if _, ok := m.(SessionMetric); !ok {
			return fmt.Errorf("metric %q declares level %q but does not implement SessionMetric", name, level)
		}
	case LevelPopulation:
		if _, ok := m.(PopulationMetric); !ok {
			return fmt.Errorf("metric %q declares level %q but does not implement PopulationMetric", name, level)
		}
	default:
		return fmt.Errorf("metric %q declares unknown level %q", name, level)
	}

	r.metrics[name] = m
	r.names = append(r.names, name)
	return nil
}

// Get returns the metric registered under name.
func (r *Registry) Get(name string) (Metric, bool) {
	m, ok := r.metrics[name]
	return m, ok
}

// List returns all registered metric names in registration order.
func (r *Registry) List() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
