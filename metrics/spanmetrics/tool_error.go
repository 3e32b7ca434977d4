/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spanmetrics

import (
	"context"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/spans"
)

// ToolError reports the status of a single tool invocation, read from the
// first "status" field found anywhere in the tool's output payload.
type ToolError struct{}

var _ metrics.SpanMetric = (*ToolError)(nil)

func (*ToolError) Name() string                                   { return "ToolError" }
func (*ToolError) Level() metrics.Level                           { return metrics.LevelSpan }
func (*ToolError) RequiredParameters() []metrics.RequiredParameter { return nil }
func (*ToolError) Provider() string                               { return "" }
func (*ToolError) EntityTypes() []spans.EntityType                { return []spans.EntityType{spans.EntityTool} }

// ComputeSpan implements metrics.SpanMetric.
func (t *ToolError) ComputeSpan(_ context.Context, span *spans.SpanEntity, _ *metrics.ComputeContext) *metrics.Result {
	statuses := findField(span.OutputPayload, "status")
	if len(statuses) == 0 {
		return metrics.Failure(t, "tool output carries no status field")
	}
	return &metrics.Result{
		MetricName: t.Name(),
		Level:      t.Level(),
		Value:      statuses[0],
		Success:    true,
		Source:     metrics.SourceNative,
		SpanIDs:    []string{span.SpanID},
		SessionIDs: []string{span.SessionID},
	}
}

// findField recursively collects every value stored under the given key in
// a nested structure.
func findField(value any, field string) []any {
	var found []any
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			if key == field {
				found = append(found, nested)
				continue
			}
			found = append(found, findField(nested, field)...)
		}
	case []any:
		for _, nested := range v {
			found = append(found, findField(nested, field)...)
		}
	}
	return found
}
