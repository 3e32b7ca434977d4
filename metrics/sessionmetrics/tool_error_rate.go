/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessionmetrics

import (
	"context"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

// ToolErrorRate is the percentage of tool spans in a session that resulted
// in an error. A session with zero tool spans rates 0, never NaN.
type ToolErrorRate struct{}

var _ metrics.SessionMetric = (*ToolErrorRate)(nil)

func (*ToolErrorRate) Name() string                                    { return "ToolErrorRate" }
func (*ToolErrorRate) Level() metrics.Level                            { return metrics.LevelSession }
func (*ToolErrorRate) RequiredParameters() []metrics.RequiredParameter { return nil }
func (*ToolErrorRate) Provider() string                                { return "" }

// ComputeSession implements metrics.SessionMetric.
func (t *ToolErrorRate) ComputeSession(_ context.Context, session *sessions.SessionEntity, _ *metrics.ComputeContext) *metrics.Result {
	toolSpans := session.SpansByType(spans.EntityTool)
	totalCalls := len(toolSpans)
	totalErrors := 0
	for _, span := range toolSpans {
		if span.ContainsError {
			totalErrors++
		}
	}

	rate := 0.0
	if totalCalls > 0 {
		rate = float64(totalErrors) / float64(totalCalls) * 100
	}

	return &metrics.Result{
		MetricName:  t.Name(),
		Description: "Percentage of tool spans that encountered errors",
		Level:       t.Level(),
		Value:       rate,
		Unit:        "%",
		Success:     true,
		Source:      metrics.SourceNative,
		SessionIDs:  []string{session.SessionID},
		Metadata: map[string]any{
			"total_tool_calls":  totalCalls,
			"total_tool_errors": totalErrors,
		},
	}
}
