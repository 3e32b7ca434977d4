/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessionmetrics

import (
	"context"
	"fmt"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

// AgentToToolInteractions counts agent→tool transitions throughout a
// session, keyed by "(Agent: X) -> (Tool: Y)".
type AgentToToolInteractions struct{}

var _ metrics.SessionMetric = (*AgentToToolInteractions)(nil)

func (*AgentToToolInteractions) Name() string         { return "AgentToToolInteractions" }
func (*AgentToToolInteractions) Level() metrics.Level { return metrics.LevelSession }
func (*AgentToToolInteractions) RequiredParameters() []metrics.RequiredParameter {
	return []metrics.RequiredParameter{metrics.ParamSpans}
}
func (*AgentToToolInteractions) Provider() string { return "" }

// ComputeSession implements metrics.SessionMetric. The owning agent of a
// tool call is the workflow name recorded on the tool span's attributes.
func (a *AgentToToolInteractions) ComputeSession(_ context.Context, session *sessions.SessionEntity, _ *metrics.ComputeContext) *metrics.Result {
	transitions := map[string]int{}
	var spanIDs []string
	for _, span := range session.Spans {
		spanIDs = append(spanIDs, span.SpanID)
		if span.EntityType != spans.EntityTool {
			continue
		}
		attrs := span.RawSpanData.Attributes()
		agent, aok := attrs["ioa_observe.workflow.name"].(string)
		tool, tok := attrs["traceloop.entity.name"].(string)
		if !aok || !tok {
			continue
		}
		transitions[fmt.Sprintf("(Agent: %s) -> (Tool: %s)", agent, tool)]++
	}

	return &metrics.Result{
		MetricName: a.Name(),
		Level:      a.Level(),
		Value:      transitions,
		Success:    true,
		Source:     metrics.SourceNative,
		SpanIDs:    spanIDs,
		SessionIDs: []string{session.SessionID},
	}
}

// AgentToAgentInteractions counts the handoffs between consecutive distinct
// agents in a session, keyed by "X -> Y".
type AgentToAgentInteractions struct{}

var _ metrics.SessionMetric = (*AgentToAgentInteractions)(nil)

func (*AgentToAgentInteractions) Name() string         { return "AgentToAgentInteractions" }
func (*AgentToAgentInteractions) Level() metrics.Level { return metrics.LevelSession }
func (*AgentToAgentInteractions) RequiredParameters() []metrics.RequiredParameter {
	return []metrics.RequiredParameter{metrics.ParamAgentTransitions}
}
func (*AgentToAgentInteractions) Provider() string { return "" }

// ComputeSession implements metrics.SessionMetric.
func (a *AgentToAgentInteractions) ComputeSession(_ context.Context, session *sessions.SessionEntity, _ *metrics.ComputeContext) *metrics.Result {
	var sequence []string
	for _, span := range session.Spans {
		if name, ok := eventAgentName(span.RawSpanData); ok {
			sequence = append(sequence, name)
		} else if span.EntityType == spans.EntityAgent {
			sequence = append(sequence, span.EntityName)
		}
	}

	transitions := map[string]int{}
	for i := 0; i+1 < len(sequence); i++ {
		if sequence[i] != sequence[i+1] {
			transitions[fmt.Sprintf("%s -> %s", sequence[i], sequence[i+1])]++
		}
	}

	return &metrics.Result{
		MetricName: a.Name(),
		Level:      a.Level(),
		Value:      transitions,
		Success:    true,
		Source:     metrics.SourceNative,
		SessionIDs: []string{session.SessionID},
	}
}

// eventAgentName reads the agent name some collectors record on the first
// span event rather than in the span attributes.
func eventAgentName(raw spans.RawSpan) (string, bool) {
	events, ok := raw["Events.Attributes"].([]any)
	if !ok || len(events) == 0 {
		return "", false
	}
	first, ok := events[0].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := first["agent_name"].(string)
	return name, ok && name != ""
}
