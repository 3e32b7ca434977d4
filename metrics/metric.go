/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"chainguard.dev/agenteval/judge"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

// Level is the granularity a metric is computed at.
type Level string

const (
	LevelSpan       Level = "span"
	LevelSession    Level = "session"
	LevelPopulation Level = "population"
)

// RequiredParameter names a session field a metric needs. The engine checks
// the matching validity predicate before scheduling the metric for a
// session; a session failing a predicate is skipped, not failed.
type RequiredParameter string

const (
	// ParamConversationData requires a transcript with non-empty turns.
	ParamConversationData RequiredParameter = "conversation_data"
	// ParamAgentTransitions requires at least one agent-to-agent or
	// agent-to-tool transition in the session.
	ParamAgentTransitions RequiredParameter = "agent_transitions"
	// ParamSpans requires a non-empty span sequence.
	ParamSpans RequiredParameter = "spans"
)

// ComputeContext carries the per-invocation collaborators a metric may use.
// Model is nil when the metric declares no provider, or when model creation
// failed; whether that is fatal is the metric's own policy.
type ComputeContext struct {
	Model judge.Interface
	Set   *sessions.SessionSet
}

// Metric is the base contract every metric implements. The level-specific
// compute method lives on one of the three narrower interfaces; a metric
// whose declared level does not match its implemented interface is rejected
// at registration.
type Metric interface {
	// Name identifies the metric; unique per registry.
	Name() string
	// Level declares the granularity the metric computes at.
	Level() Level
	// RequiredParameters lists the session fields the metric needs.
	RequiredParameters() []RequiredParameter
	// Provider names the judge-model provider the metric wants, or ""
	// when it computes without one.
	Provider() string
}

// SpanMetric computes once per applicable span.
type SpanMetric interface {
	Metric
	// EntityTypes is the entity-type allow-list; empty means all types.
	EntityTypes() []spans.EntityType
	ComputeSpan(ctx context.Context, span *spans.SpanEntity, mc *ComputeContext) *Result
}

// SessionMetric computes once per applicable session.
type SessionMetric interface {
	Metric
	ComputeSession(ctx context.Context, session *sessions.SessionEntity, mc *ComputeContext) *Result
}

// PopulationMetric computes exactly once over the whole session set.
type PopulationMetric interface {
	Metric
	ComputePopulation(ctx context.Context, set *sessions.SessionSet, mc *ComputeContext) *Result
}
