/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package populationmetrics

import (
	"context"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

// ToolErrorRateMacro is the unweighted mean of the per-session tool error
// rates across the population. Sessions without tool calls contribute a
// rate of 0, matching the session-level metric.
type ToolErrorRateMacro struct{}

var _ metrics.PopulationMetric = (*ToolErrorRateMacro)(nil)

func (*ToolErrorRateMacro) Name() string                                    { return "ToolErrorRateMacro" }
func (*ToolErrorRateMacro) Level() metrics.Level                            { return metrics.LevelPopulation }
func (*ToolErrorRateMacro) RequiredParameters() []metrics.RequiredParameter { return nil }
func (*ToolErrorRateMacro) Provider() string                                { return "" }

// ComputePopulation implements metrics.PopulationMetric.
func (t *ToolErrorRateMacro) ComputePopulation(_ context.Context, set *sessions.SessionSet, _ *metrics.ComputeContext) *metrics.Result {
	total := 0.0
	for _, session := range set.Sessions {
		toolSpans := session.SpansByType(spans.EntityTool)
		if len(toolSpans) == 0 {
			continue
		}
		errors := 0
		for _, span := range toolSpans {
			if span.ContainsError {
				errors++
			}
		}
		total += float64(errors) / float64(len(toolSpans)) * 100
	}

	mean := 0.0
	if set.Len() > 0 {
		mean = total / float64(set.Len())
	}

	return &metrics.Result{
		MetricName:  t.Name(),
		Description: "Mean per-session tool error rate across the population",
		Level:       t.Level(),
		Value:       mean,
		Unit:        "%",
		Success:     true,
		Source:      metrics.SourceNative,
		Metadata:    map[string]any{"sessions": set.Len()},
	}
}
