/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessions

import (
	"fmt"
	"strings"

	"chainguard.dev/agenteval/spans"
)

// Turn is one (input, output) pair of the reconstructed transcript.
type Turn struct {
	EntityType spans.EntityType `json:"entity_type"`
	EntityName string           `json:"entity_name"`
	SpanID     string           `json:"span_id"`
	Input      map[string]any   `json:"input,omitempty"`
	Output     map[string]any   `json:"output,omitempty"`
}

// ConversationData reconstructs the ordered transcript of the session by
// concatenating the (input, output) pairs of workflow and agent spans in
// sequence order. Spans with neither input nor output contribute no turn.
func (s *SessionEntity) ConversationData() []Turn {
	var turns []Turn
	for _, span := range s.Spans {
		if span.EntityType != spans.EntityWorkflow && span.EntityType != spans.EntityAgent {
			continue
		}
		if span.InputPayload == nil && span.OutputPayload == nil {
			continue
		}
		turns = append(turns, Turn{
			EntityType: span.EntityType,
			EntityName: span.EntityName,
			SpanID:     span.SpanID,
			Input:      span.InputPayload,
			Output:     span.OutputPayload,
		})
	}
	return turns
}

// AgentConversationText reconstructs a transcript scoped to the spans whose
// agent identifier matches. It returns the empty string when none match;
// callers treat that as "not applicable", not as an error.
func (s *SessionEntity) AgentConversationText(agentID string) string {
	var sb strings.Builder
	for _, span := range s.Spans {
		if !spanBelongsToAgent(span, agentID) {
			continue
		}
		if span.InputPayload == nil && span.OutputPayload == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "INPUT: %s\nOUTPUT: %s", payloadText(span.InputPayload), payloadText(span.OutputPayload))
	}
	return sb.String()
}

func spanBelongsToAgent(span *spans.SpanEntity, agentID string) bool {
	if agentID == "" {
		return false
	}
	if span.AgentID == agentID {
		return true
	}
	return span.EntityType == spans.EntityAgent && span.EntityName == agentID
}
