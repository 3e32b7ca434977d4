/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spanmetrics_test

import (
	"context"
	"strings"
	"testing"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/metrics/spanmetrics"
	"chainguard.dev/agenteval/spans"
	"github.com/invopop/jsonschema"
)

type scriptedJudge struct {
	score     float64
	reasoning string
	prompts   []string
}

func (s *scriptedJudge) Judge(_ context.Context, prompt string, _ *jsonschema.Schema) (float64, string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.score, s.reasoning, nil
}

func utilizationSpan() *spans.SpanEntity {
	return &spans.SpanEntity{
		EntityType:    spans.EntityTool,
		SpanID:        "sp1",
		SessionID:     "s1",
		EntityName:    "search",
		InputPayload:  map[string]any{"value": "find the weather"},
		OutputPayload: map[string]any{"value": "sunny, 20C"},
		ToolDefinition: &spans.ToolDefinition{
			Description: "web search",
		},
	}
}

func TestToolUtilizationAccuracy(t *testing.T) {
	model := &scriptedJudge{score: 1, reasoning: "reasonable call"}
	metric := &spanmetrics.ToolUtilizationAccuracy{}

	result := metric.ComputeSpan(context.Background(), utilizationSpan(), &metrics.ComputeContext{Model: model})
	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.ErrorMessage)
	}
	if result.Value != 1.0 {
		t.Errorf("Value = %v, want 1", result.Value)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("judge called %d times, want 1", len(model.prompts))
	}
	prompt := model.prompts[0]
	for _, fragment := range []string{"find the weather", "search", "web search", "sunny, 20C"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestToolUtilizationAccuracyOptsOut(t *testing.T) {
	metric := &spanmetrics.ToolUtilizationAccuracy{}
	model := &scriptedJudge{score: 1}

	tests := []struct {
		name   string
		mutate func(*spans.SpanEntity)
	}{
		{"missing input", func(s *spans.SpanEntity) { s.InputPayload = nil }},
		{"missing output", func(s *spans.SpanEntity) { s.OutputPayload = nil }},
		{"unresolved name", func(s *spans.SpanEntity) { s.EntityName = "unknown" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			span := utilizationSpan()
			tc.mutate(span)
			result := metric.ComputeSpan(context.Background(), span, &metrics.ComputeContext{Model: model})
			if !result.IsOptOut() {
				t.Errorf("expected opt-out, got %+v", result)
			}
		})
	}
	if len(model.prompts) != 0 {
		t.Errorf("judge consulted for inapplicable spans: %d calls", len(model.prompts))
	}
}

func TestToolUtilizationAccuracyWithoutModel(t *testing.T) {
	metric := &spanmetrics.ToolUtilizationAccuracy{}
	result := metric.ComputeSpan(context.Background(), utilizationSpan(), &metrics.ComputeContext{})
	if result.Success {
		t.Error("expected failure without a judge model")
	}
	if result.ErrorMessage == "" {
		t.Error("failure carries no error message")
	}
}
