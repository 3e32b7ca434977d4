/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessions_test

import (
	"context"
	"testing"

	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
	"github.com/google/go-cmp/cmp"
)

func span(typ spans.EntityType, spanID, sessionID string) *spans.SpanEntity {
	return &spans.SpanEntity{
		EntityType: typ,
		SpanID:     spanID,
		SessionID:  sessionID,
		AppName:    "unknown-app",
	}
}

func TestGroupPreservesOrder(t *testing.T) {
	batch := []*spans.SpanEntity{
		span(spans.EntityAgent, "1", "s2"),
		span(spans.EntityAgent, "2", "s1"),
		span(spans.EntityTool, "3", "s2"),
	}

	bySession, order := sessions.Group(batch)

	wantOrder := []string{"s2", "s1"}
	if diff := cmp.Diff(wantOrder, order); diff != "" {
		t.Errorf("session order (-want +got):\n%s", diff)
	}
	if len(bySession["s2"]) != 2 || len(bySession["s1"]) != 1 {
		t.Errorf("unexpected grouping: s2=%d s1=%d", len(bySession["s2"]), len(bySession["s1"]))
	}
	// Within a session, batch order survives.
	if bySession["s2"][0].SpanID != "1" || bySession["s2"][1].SpanID != "3" {
		t.Errorf("span order lost: %q, %q", bySession["s2"][0].SpanID, bySession["s2"][1].SpanID)
	}
}

func TestBuildSessionSetEndToEnd(t *testing.T) {
	raw := func(name, sessionID string) spans.RawSpan {
		return spans.RawSpan{
			"SpanName":       name,
			"SpanAttributes": map[string]any{"session.id": sessionID},
		}
	}
	batch := []spans.RawSpan{
		raw("x.llm.chat", "s1"),
		raw("y.tool", "s1"),
		raw("z.agent", "s1"),
		raw("w.workflow", "s2"),
	}

	entities := spans.Parse(context.Background(), batch)
	set := sessions.BuildSessionSet(context.Background(), entities)

	if set.Len() != 2 {
		t.Fatalf("got %d sessions, want 2", set.Len())
	}
	if set.SpanCount != 4 {
		t.Errorf("SpanCount = %d, want 4", set.SpanCount)
	}

	first := set.Sessions[0]
	if first.SessionID != "s1" || len(first.Spans) != 3 {
		t.Fatalf("first session = %q with %d spans, want s1 with 3", first.SessionID, len(first.Spans))
	}
	for i, want := range []spans.EntityType{spans.EntityLLM, spans.EntityTool, spans.EntityAgent} {
		if got := first.Spans[i].EntityType; got != want {
			t.Errorf("span %d type = %q, want %q", i, got, want)
		}
	}

	second := set.Sessions[1]
	if second.SessionID != "s2" || len(second.Spans) != 1 {
		t.Fatalf("second session = %q with %d spans, want s2 with 1", second.SessionID, len(second.Spans))
	}
	if second.Spans[0].EntityType != spans.EntityWorkflow {
		t.Errorf("second session span type = %q, want workflow", second.Spans[0].EntityType)
	}
}

func TestSpansByType(t *testing.T) {
	s := sessions.New("s1", []*spans.SpanEntity{
		span(spans.EntityTool, "1", "s1"),
		span(spans.EntityAgent, "2", "s1"),
		span(spans.EntityTool, "3", "s1"),
	})
	tools := s.SpansByType(spans.EntityTool)
	if len(tools) != 2 || tools[0].SpanID != "1" || tools[1].SpanID != "3" {
		t.Errorf("unexpected tool spans: %+v", tools)
	}
	if got := s.SpansByType(spans.EntityWorkflow); got != nil {
		t.Errorf("expected no workflow spans, got %d", len(got))
	}
}

func TestSessionAppName(t *testing.T) {
	s := sessions.New("s1", []*spans.SpanEntity{
		span(spans.EntityAgent, "1", "s1"),
		{EntityType: spans.EntityTool, SpanID: "2", SessionID: "s1", AppName: "my-app"},
	})
	if got := s.AppName(); got != "my-app" {
		t.Errorf("AppName = %q, want my-app", got)
	}

	empty := sessions.New("s2", []*spans.SpanEntity{span(spans.EntityAgent, "1", "s2")})
	if got := empty.AppName(); got != "unknown-app" {
		t.Errorf("AppName = %q, want unknown-app", got)
	}
}

func TestInputQueryAndFinalResponse(t *testing.T) {
	s := sessions.New("s1", []*spans.SpanEntity{
		{
			EntityType:   spans.EntityAgent,
			SessionID:    "s1",
			InputPayload: map[string]any{"value": "agent input"},
			OutputPayload: map[string]any{
				"value": "agent output",
			},
		},
		{
			EntityType:    spans.EntityWorkflow,
			SessionID:     "s1",
			InputPayload:  map[string]any{"value": "what is the weather"},
			OutputPayload: map[string]any{"value": "sunny"},
		},
	})

	// Workflow spans outrank agent spans for both views.
	if got := s.InputQuery(); got != "what is the weather" {
		t.Errorf("InputQuery = %q", got)
	}
	if got := s.FinalResponse(); got != "sunny" {
		t.Errorf("FinalResponse = %q", got)
	}
}

func TestFinalResponseFallsBackToAgent(t *testing.T) {
	s := sessions.New("s1", []*spans.SpanEntity{
		{
			EntityType:    spans.EntityAgent,
			SessionID:     "s1",
			OutputPayload: map[string]any{"value": "agent answer"},
		},
	})
	if got := s.FinalResponse(); got != "agent answer" {
		t.Errorf("FinalResponse = %q, want agent answer", got)
	}

	empty := sessions.New("s2", []*spans.SpanEntity{span(spans.EntityTool, "1", "s2")})
	if got := empty.FinalResponse(); got != "" {
		t.Errorf("FinalResponse = %q, want empty", got)
	}
}

func TestExecutionTree(t *testing.T) {
	root := &spans.SpanEntity{EntityType: spans.EntityWorkflow, SpanID: "w", SessionID: "s1"}
	child := &spans.SpanEntity{EntityType: spans.EntityAgent, SpanID: "a", ParentSpanID: "w", SessionID: "s1"}
	grandchild := &spans.SpanEntity{EntityType: spans.EntityTool, SpanID: "t", ParentSpanID: "a", SessionID: "s1"}
	orphan := &spans.SpanEntity{EntityType: spans.EntityAgent, SpanID: "o", ParentSpanID: "missing", SessionID: "s1"}
	selfref := &spans.SpanEntity{EntityType: spans.EntityAgent, SpanID: "x", ParentSpanID: "x", SessionID: "s1"}

	s := sessions.New("s1", []*spans.SpanEntity{root, child, grandchild, orphan, selfref})
	roots := s.ExecutionTree()

	if len(roots) != 3 {
		t.Fatalf("got %d roots, want 3", len(roots))
	}
	if roots[0].Span.SpanID != "w" {
		t.Errorf("first root = %q, want w", roots[0].Span.SpanID)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Span.SpanID != "a" {
		t.Fatalf("unexpected children of w: %+v", roots[0].Children)
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].Span.SpanID != "t" {
		t.Errorf("unexpected children of a")
	}
}

func TestConversationData(t *testing.T) {
	s := sessions.New("s1", []*spans.SpanEntity{
		{
			EntityType:    spans.EntityAgent,
			EntityName:    "planner",
			SpanID:        "1",
			SessionID:     "s1",
			InputPayload:  map[string]any{"value": "in"},
			OutputPayload: map[string]any{"value": "out"},
		},
		// No payloads: contributes no turn.
		{EntityType: spans.EntityAgent, EntityName: "idle", SpanID: "2", SessionID: "s1"},
		// Tool spans never contribute turns.
		{
			EntityType:   spans.EntityTool,
			SpanID:       "3",
			SessionID:    "s1",
			InputPayload: map[string]any{"value": "tool in"},
		},
	})

	turns := s.ConversationData()
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].EntityName != "planner" || turns[0].SpanID != "1" {
		t.Errorf("unexpected turn: %+v", turns[0])
	}
}

func TestAgentConversationText(t *testing.T) {
	s := sessions.New("s1", []*spans.SpanEntity{
		{
			EntityType:    spans.EntityAgent,
			EntityName:    "planner",
			SessionID:     "s1",
			InputPayload:  map[string]any{"value": "first in"},
			OutputPayload: map[string]any{"value": "first out"},
		},
		{
			EntityType:    spans.EntityAgent,
			EntityName:    "other",
			SessionID:     "s1",
			InputPayload:  map[string]any{"value": "not ours"},
			OutputPayload: map[string]any{"value": "not ours"},
		},
		{
			EntityType:    spans.EntityTool,
			AgentID:       "planner",
			SessionID:     "s1",
			InputPayload:  map[string]any{"value": "tool in"},
			OutputPayload: map[string]any{"value": "tool out"},
		},
	})

	want := "INPUT: first in\nOUTPUT: first out\n\nINPUT: tool in\nOUTPUT: tool out"
	if got := s.AgentConversationText("planner"); got != want {
		t.Errorf("AgentConversationText = %q, want %q", got, want)
	}

	if got := s.AgentConversationText("nobody"); got != "" {
		t.Errorf("expected empty transcript for unknown agent, got %q", got)
	}
	if got := s.AgentConversationText(""); got != "" {
		t.Errorf("expected empty transcript for empty agent id, got %q", got)
	}
}

func TestAgentStats(t *testing.T) {
	s := sessions.New("s1", []*spans.SpanEntity{
		{EntityType: spans.EntityAgent, EntityName: "planner", SessionID: "s1"},
		{EntityType: spans.EntityTool, AgentID: "planner", SessionID: "s1", ContainsError: true},
		{EntityType: spans.EntityTool, AgentID: "planner", SessionID: "s1"},
		{EntityType: spans.EntityAgent, EntityName: "critic", SessionID: "s1"},
		// No agent attribution: counted for nobody.
		{EntityType: spans.EntityLLM, SessionID: "s1"},
	})

	stats := s.AgentStats()
	want := map[string]sessions.AgentStat{
		"planner": {SpanCount: 3, ToolCalls: 2, Errors: 1},
		"critic":  {SpanCount: 1},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("AgentStats (-want +got):\n%s", diff)
	}
}
