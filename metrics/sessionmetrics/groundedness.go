/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessionmetrics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chainguard.dev/agenteval/judge"
	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

const groundednessPrompt = `You are an evaluator of Groundedness. Evaluate how well each response is grounded in verifiable data and avoids speculation or hallucinations.

Here is the evaluation criteria to follow: (1) Is the response based on verifiable information from the provided data, knowledge bases, or tool outputs? (2) Does the response avoid speculation, hallucinations, or misleading statements? (3) Is the factual accuracy of the response maintained throughout the conversation?

Scoring Rubric:
    1: Response by the system is fully grounded by the context available through the tools and conversation.
    0: There are details in the response that are not grounded by the context available through tools and conversation.

CONVERSATION %s`

// Groundedness asks a judge whether the session's responses stay grounded
// in the context its tools and conversation provide.
type Groundedness struct{}

var _ metrics.SessionMetric = (*Groundedness)(nil)

func (*Groundedness) Name() string         { return "Groundedness" }
func (*Groundedness) Level() metrics.Level { return metrics.LevelSession }
func (*Groundedness) RequiredParameters() []metrics.RequiredParameter {
	return []metrics.RequiredParameter{metrics.ParamConversationData}
}
func (*Groundedness) Provider() string { return "openai" }

// ComputeSession implements metrics.SessionMetric. A missing judge model is
// a failure: grading cannot silently no-op.
func (g *Groundedness) ComputeSession(ctx context.Context, session *sessions.SessionEntity, mc *metrics.ComputeContext) *metrics.Result {
	if mc.Model == nil {
		return metrics.Failure(g, "no judge model available; configure LLM credentials")
	}

	var exchanges []string
	for _, span := range session.Spans {
		if span.EntityType != spans.EntityAgent && span.EntityType != spans.EntityTool {
			continue
		}
		exchanges = append(exchanges, fmt.Sprintf("INPUT: %s\nOUTPUT: %s",
			payloadJSON(span.InputPayload), payloadJSON(span.OutputPayload)))
	}

	prompt := fmt.Sprintf(groundednessPrompt, strings.Join(exchanges, "\n\n"))
	score, reasoning, err := mc.Model.Judge(ctx, prompt, judge.BinaryGradingSchema())
	if err != nil {
		return metrics.Failure(g, fmt.Sprintf("judge call failed: %v", err))
	}

	return &metrics.Result{
		MetricName: g.Name(),
		Level:      g.Level(),
		Value:      score,
		Reasoning:  reasoning,
		Success:    true,
		Source:     metrics.SourceNative,
		SessionIDs: []string{session.SessionID},
	}
}

func payloadJSON(payload map[string]any) string {
	if payload == nil {
		return "null"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
