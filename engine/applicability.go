/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

// predicates maps each required parameter to its validity check. A session
// that fails a predicate is skipped for the metric: "not applicable", not
// "failed". A field that is present but empty also skips; see DESIGN.md
// for the tradeoff.
var predicates = map[metrics.RequiredParameter]func(*sessions.SessionEntity) bool{
	metrics.ParamSpans: func(s *sessions.SessionEntity) bool {
		return len(s.Spans) > 0
	},
	metrics.ParamConversationData: func(s *sessions.SessionEntity) bool {
		for _, turn := range s.ConversationData() {
			if len(turn.Input) > 0 || len(turn.Output) > 0 {
				return true
			}
		}
		return false
	},
	metrics.ParamAgentTransitions: func(s *sessions.SessionEntity) bool {
		// At least two agent or tool steps are needed for a transition.
		steps := 0
		for _, span := range s.Spans {
			if span.EntityType == spans.EntityAgent || span.EntityType == spans.EntityTool {
				steps++
				if steps >= 2 {
					return true
				}
			}
		}
		return false
	},
}

// sessionApplicable reports whether every required parameter of the metric
// holds for the session. Unknown parameters fail closed.
func sessionApplicable(m metrics.Metric, session *sessions.SessionEntity) bool {
	for _, param := range m.RequiredParameters() {
		predicate, ok := predicates[param]
		if !ok || !predicate(session) {
			return false
		}
	}
	return true
}

// spanApplicable reports whether a span's entity type intersects the
// metric's allow-list. An empty allow-list admits all types.
func spanApplicable(m metrics.SpanMetric, span *spans.SpanEntity) bool {
	allowed := m.EntityTypes()
	if len(allowed) == 0 {
		return true
	}
	for _, typ := range allowed {
		if span.EntityType == typ {
			return true
		}
	}
	return false
}
