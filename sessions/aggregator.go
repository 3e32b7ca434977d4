/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessions

import (
	"context"

	"chainguard.dev/agenteval/spans"
	"github.com/chainguard-dev/clog"
)

// Group partitions spans by session id, preserving the original order both
// of the spans within each session and of the sessions themselves (order of
// first appearance). Spans without a session id group under "".
func Group(spanEntities []*spans.SpanEntity) (map[string][]*spans.SpanEntity, []string) {
	bySession := map[string][]*spans.SpanEntity{}
	var order []string
	for _, span := range spanEntities {
		if _, seen := bySession[span.SessionID]; !seen {
			order = append(order, span.SessionID)
		}
		bySession[span.SessionID] = append(bySession[span.SessionID], span)
	}
	return bySession, order
}

// SessionSet is the collection of sessions one engine invocation operates
// on, plus cross-session stats. Immutable after construction.
type SessionSet struct {
	Sessions []*SessionEntity `json:"sessions"`

	// AppNames maps session id to the application the session belongs to.
	AppNames map[string]string `json:"app_names"`

	SpanCount int `json:"span_count"`
}

// BuildSessionSet groups a batch of span entities into sessions and
// assembles the set.
func BuildSessionSet(ctx context.Context, spanEntities []*spans.SpanEntity) *SessionSet {
	bySession, order := Group(spanEntities)

	set := &SessionSet{
		AppNames:  make(map[string]string, len(order)),
		SpanCount: len(spanEntities),
	}
	for _, sessionID := range order {
		session := New(sessionID, bySession[sessionID])
		set.Sessions = append(set.Sessions, session)
		set.AppNames[sessionID] = session.AppName()
	}
	clog.FromContext(ctx).Infof("built %d sessions from %d spans", len(set.Sessions), len(spanEntities))
	return set
}

// Len returns the number of sessions in the set.
func (s *SessionSet) Len() int {
	return len(s.Sessions)
}
