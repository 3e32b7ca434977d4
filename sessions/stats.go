/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessions

import "chainguard.dev/agenteval/spans"

// AgentStat aggregates counts for one agent within a session.
type AgentStat struct {
	SpanCount int `json:"span_count"`
	ToolCalls int `json:"tool_calls"`
	Errors    int `json:"errors"`
}

// AgentStats derives per-agent aggregate counts on demand. Spans attribute
// to an agent through their agent id when set, or through the entity name
// for agent spans.
func (s *SessionEntity) AgentStats() map[string]AgentStat {
	stats := map[string]AgentStat{}
	for _, span := range s.Spans {
		agentID := span.AgentID
		if agentID == "" && span.EntityType == spans.EntityAgent {
			agentID = span.EntityName
		}
		if agentID == "" {
			continue
		}
		stat := stats[agentID]
		stat.SpanCount++
		if span.EntityType == spans.EntityTool {
			stat.ToolCalls++
		}
		if span.ContainsError {
			stat.Errors++
		}
		stats[agentID] = stat
	}
	return stats
}
