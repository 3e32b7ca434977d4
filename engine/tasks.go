/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"context"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
)

// The task constructors below wrap one (metric, unit) computation. Each
// fills in unit identity (span/session ids and a best-effort app name)
// when the metric body left them unset, so even failure results stay
// attributable.

func (e *Engine) spanTask(m metrics.SpanMetric, span *spans.SpanEntity, mc *metrics.ComputeContext) task {
	return func(ctx context.Context) *metrics.Result {
		result := safeResult(m, func() *metrics.Result {
			return m.ComputeSpan(ctx, span, mc)
		})
		if len(result.SpanIDs) == 0 && span.SpanID != "" {
			result.SpanIDs = []string{span.SpanID}
		}
		if len(result.SessionIDs) == 0 && span.SessionID != "" {
			result.SessionIDs = []string{span.SessionID}
		}
		if result.AppName == "" {
			result.AppName = span.AppName
		}
		observe(m.Name(), string(m.Level()), result.Success)
		return result
	}
}

func (e *Engine) sessionTask(m metrics.SessionMetric, session *sessions.SessionEntity, mc *metrics.ComputeContext) task {
	return func(ctx context.Context) *metrics.Result {
		result := safeResult(m, func() *metrics.Result {
			return m.ComputeSession(ctx, session, mc)
		})
		if len(result.SessionIDs) == 0 && session.SessionID != "" {
			result.SessionIDs = []string{session.SessionID}
		}
		if result.AppName == "" {
			result.AppName = session.AppName()
		}
		observe(m.Name(), string(m.Level()), result.Success)
		return result
	}
}

func (e *Engine) populationTask(m metrics.PopulationMetric, set *sessions.SessionSet, mc *metrics.ComputeContext) task {
	return func(ctx context.Context) *metrics.Result {
		result := safeResult(m, func() *metrics.Result {
			return m.ComputePopulation(ctx, set, mc)
		})
		if len(result.SessionIDs) == 0 {
			for _, session := range set.Sessions {
				result.SessionIDs = append(result.SessionIDs, session.SessionID)
			}
		}
		observe(m.Name(), string(m.Level()), result.Success)
		return result
	}
}
