/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessions

import (
	"encoding/json"

	"chainguard.dev/agenteval/spans"
)

// SessionEntity is one session: an ordered sequence of span entities
// sharing a session id. The sequence preserves the original batch order.
type SessionEntity struct {
	SessionID string              `json:"session_id"`
	Spans     []*spans.SpanEntity `json:"spans"`
}

// New builds a session from the spans belonging to it.
func New(sessionID string, spanEntities []*spans.SpanEntity) *SessionEntity {
	return &SessionEntity{SessionID: sessionID, Spans: spanEntities}
}

// SpansByType returns the spans of one entity type, in sequence order.
func (s *SessionEntity) SpansByType(typ spans.EntityType) []*spans.SpanEntity {
	var out []*spans.SpanEntity
	for _, span := range s.Spans {
		if span.EntityType == typ {
			out = append(out, span)
		}
	}
	return out
}

// AppName returns the application name of the session, taken from the first
// span that resolved one.
func (s *SessionEntity) AppName() string {
	for _, span := range s.Spans {
		if span.AppName != "" && span.AppName != "unknown-app" {
			return span.AppName
		}
	}
	return "unknown-app"
}

// InputQuery extracts the first user-facing input of the session,
// preferring workflow-level spans when present.
func (s *SessionEntity) InputQuery() string {
	for _, typ := range []spans.EntityType{spans.EntityWorkflow, spans.EntityAgent} {
		for _, span := range s.SpansByType(typ) {
			if text := payloadText(span.InputPayload); text != "" {
				return text
			}
		}
	}
	return ""
}

// FinalResponse extracts the last produced output of the session,
// preferring workflow-level spans when present.
func (s *SessionEntity) FinalResponse() string {
	for _, typ := range []spans.EntityType{spans.EntityWorkflow, spans.EntityAgent} {
		partition := s.SpansByType(typ)
		for i := len(partition) - 1; i >= 0; i-- {
			if text := payloadText(partition[i].OutputPayload); text != "" {
				return text
			}
		}
	}
	return ""
}

// payloadText renders a payload as text. Payloads wrapped under a "value"
// key come back as the bare value; anything else is compact JSON.
func payloadText(payload map[string]any) string {
	if payload == nil {
		return ""
	}
	if len(payload) == 1 {
		if v, ok := payload["value"].(string); ok {
			return v
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
