/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

// SentinelValue is the documented failure value. A result carrying it with
// Success=true is a deliberate opt-out and is dropped before bucketing; with
// Success=false it is a real failure and is always retained.
const SentinelValue = -1

// Source values for results.
const (
	SourceNative = "native"
	SourceCache  = "cache"
)

// Result is one computed metric value at its aggregation level.
//
// Invariants: Success=false implies ErrorMessage is non-empty and Value is
// SentinelValue; Success=true implies Value is well-formed for the metric's
// declared unit.
type Result struct {
	MetricName  string `json:"metric_name"`
	Description string `json:"description,omitempty"`

	Value     any    `json:"value"`
	Reasoning string `json:"reasoning,omitempty"`
	Unit      string `json:"unit,omitempty"`

	Level Level `json:"aggregation_level"`

	SpanIDs    []string `json:"span_ids,omitempty"`
	SessionIDs []string `json:"session_ids,omitempty"`

	EntitiesInvolved []string       `json:"entities_involved,omitempty"`
	EdgesInvolved    []string       `json:"edges_involved,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`

	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`

	AppName string `json:"app_name,omitempty"`
	Source  string `json:"source"`
}

// Failure builds a failed result for the metric with the given message.
func Failure(m Metric, message string) *Result {
	return &Result{
		MetricName:   m.Name(),
		Level:        m.Level(),
		Value:        SentinelValue,
		Success:      false,
		ErrorMessage: message,
		Source:       SourceNative,
	}
}

// OptOut builds the "not applicable, drop silently" result: Success=true
// with the sentinel value. The engine discards it before bucketing.
func OptOut(m Metric) *Result {
	return &Result{
		MetricName: m.Name(),
		Level:      m.Level(),
		Value:      SentinelValue,
		Success:    true,
		Source:     SourceNative,
	}
}

// IsOptOut reports whether a result is the silent opt-out signal.
func (r *Result) IsOptOut() bool {
	if !r.Success {
		return false
	}
	switch v := r.Value.(type) {
	case int:
		return v == SentinelValue
	case float64:
		return v == SentinelValue
	default:
		return false
	}
}
