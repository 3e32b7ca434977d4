/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spanmetrics

import (
	"context"
	"encoding/json"
	"fmt"

	"chainguard.dev/agenteval/judge"
	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/spans"
)

const toolUtilizationPrompt = `You are an evaluator tasked with assessing the Tool Utilization Accuracy made by an AI agent for a given query.

Input: %s

Tool Called: %s

Tool Definition: %s

Output: %s

Evaluation Task - Determine if the tool called was reasonable in response to the input. Further determine if the tool was able to provide output to address the needs in the input.

Scoring Rubric:
1: The tool call was completely reasonable and addressed the input.
0: It is unclear why this tool was called and/or it failed to provide useful output.`

// ToolUtilizationAccuracy asks a judge whether a tool call was a reasonable
// response to its input.
type ToolUtilizationAccuracy struct{}

var _ metrics.SpanMetric = (*ToolUtilizationAccuracy)(nil)

func (*ToolUtilizationAccuracy) Name() string         { return "ToolUtilizationAccuracy" }
func (*ToolUtilizationAccuracy) Level() metrics.Level { return metrics.LevelSpan }
func (*ToolUtilizationAccuracy) RequiredParameters() []metrics.RequiredParameter {
	return nil
}
func (*ToolUtilizationAccuracy) Provider() string { return "openai" }
func (*ToolUtilizationAccuracy) EntityTypes() []spans.EntityType {
	return []spans.EntityType{spans.EntityTool}
}

// ComputeSpan implements metrics.SpanMetric. A span without both payloads
// and a resolved name opts out; a missing judge model is a failure by this
// metric's policy.
func (t *ToolUtilizationAccuracy) ComputeSpan(ctx context.Context, span *spans.SpanEntity, mc *metrics.ComputeContext) *metrics.Result {
	if span.InputPayload == nil || span.OutputPayload == nil || span.EntityName == "" || span.EntityName == "unknown" {
		return metrics.OptOut(t)
	}
	if mc.Model == nil {
		return metrics.Failure(t, "no judge model available; configure LLM credentials")
	}

	prompt := fmt.Sprintf(toolUtilizationPrompt,
		jsonText(span.InputPayload),
		span.EntityName,
		jsonText(span.ToolDefinition),
		jsonText(span.OutputPayload),
	)

	score, reasoning, err := mc.Model.Judge(ctx, prompt, judge.BinaryGradingSchema())
	if err != nil {
		return metrics.Failure(t, fmt.Sprintf("judge call failed: %v", err))
	}
	return &metrics.Result{
		MetricName: t.Name(),
		Level:      t.Level(),
		Value:      score,
		Reasoning:  reasoning,
		Success:    true,
		Source:     metrics.SourceNative,
		SpanIDs:    []string{span.SpanID},
		SessionIDs: []string{span.SessionID},
	}
}

func jsonText(v any) string {
	if v == nil {
		return "null"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
