/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessionmetrics_test

import (
	"context"
	"testing"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/metrics/sessionmetrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

func toolSpan(spanID string, failed bool) *spans.SpanEntity {
	return &spans.SpanEntity{
		EntityType:    spans.EntityTool,
		SpanID:        spanID,
		SessionID:     "s1",
		ContainsError: failed,
	}
}

func TestToolErrorRate(t *testing.T) {
	metric := &sessionmetrics.ToolErrorRate{}
	session := sessions.New("s1", []*spans.SpanEntity{
		toolSpan("1", false),
		toolSpan("2", true),
		toolSpan("3", false),
		toolSpan("4", true),
		// Non-tool spans do not count toward the rate.
		{EntityType: spans.EntityAgent, SessionID: "s1", ContainsError: true},
	})

	result := metric.ComputeSession(context.Background(), session, &metrics.ComputeContext{})
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.ErrorMessage)
	}
	if result.Value != 50.0 {
		t.Errorf("Value = %v, want 50", result.Value)
	}
	if result.Unit != "%" {
		t.Errorf("Unit = %q, want %%", result.Unit)
	}
	if result.Metadata["total_tool_calls"] != 4 || result.Metadata["total_tool_errors"] != 2 {
		t.Errorf("unexpected metadata: %#v", result.Metadata)
	}
}

func TestToolErrorRateNoTools(t *testing.T) {
	metric := &sessionmetrics.ToolErrorRate{}
	session := sessions.New("s1", []*spans.SpanEntity{
		{EntityType: spans.EntityAgent, SessionID: "s1"},
	})

	result := metric.ComputeSession(context.Background(), session, &metrics.ComputeContext{})
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.ErrorMessage)
	}
	if result.Value != 0.0 {
		t.Errorf("Value = %v, want 0 for a session without tool calls", result.Value)
	}
}
