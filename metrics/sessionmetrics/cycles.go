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

// CyclesCount counts contiguous repeated subsequences in the agent/tool
// entity sequence of a session. A high count suggests the agents are
// looping instead of making progress.
type CyclesCount struct{}

var _ metrics.SessionMetric = (*CyclesCount)(nil)

func (*CyclesCount) Name() string         { return "CyclesCount" }
func (*CyclesCount) Level() metrics.Level { return metrics.LevelSession }
func (*CyclesCount) RequiredParameters() []metrics.RequiredParameter {
	return []metrics.RequiredParameter{metrics.ParamSpans}
}
func (*CyclesCount) Provider() string { return "" }

// ComputeSession implements metrics.SessionMetric.
func (c *CyclesCount) ComputeSession(_ context.Context, session *sessions.SessionEntity, _ *metrics.ComputeContext) *metrics.Result {
	var sequence []string
	for _, span := range session.Spans {
		if span.EntityType == spans.EntityAgent || span.EntityType == spans.EntityTool {
			sequence = append(sequence, span.EntityName)
		}
	}

	return &metrics.Result{
		MetricName: c.Name(),
		Level:      c.Level(),
		Value:      countContiguousCycles(sequence, 2),
		Reasoning:  "Count of contiguous cycles in agent and tool interactions",
		Success:    true,
		Source:     metrics.SourceNative,
		SessionIDs: []string{session.SessionID},
	}
}

// countContiguousCycles counts positions where a subsequence of at least
// minCycleLen immediately repeats itself. After a match the scan resumes
// past the first period of the cycle.
func countContiguousCycles(seq []string, minCycleLen int) int {
	n := len(seq)
	cycles := 0
	for i := 0; i < n; {
		found := false
		for k := minCycleLen; k <= (n-i)/2; k++ {
			if equalRanges(seq, i, i+k, k) {
				cycles++
				found = true
				i += k
				break
			}
		}
		if !found {
			i++
		}
	}
	return cycles
}

func equalRanges(seq []string, a, b, length int) bool {
	for j := 0; j < length; j++ {
		if seq[a+j] != seq[b+j] {
			return false
		}
	}
	return true
}
