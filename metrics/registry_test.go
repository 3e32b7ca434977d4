/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"context"
	"strings"
	"testing"

	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/sessions"
	"chainguard.dev/agenteval/spans"
	"github.com/google/go-cmp/cmp"
)

// stubSessionMetric is a well-formed session metric.
type stubSessionMetric struct {
	name string
}

func (s *stubSessionMetric) Name() string                                    { return s.name }
func (s *stubSessionMetric) Level() metrics.Level                            { return metrics.LevelSession }
func (s *stubSessionMetric) RequiredParameters() []metrics.RequiredParameter { return nil }
func (s *stubSessionMetric) Provider() string                                { return "" }
func (s *stubSessionMetric) ComputeSession(context.Context, *sessions.SessionEntity, *metrics.ComputeContext) *metrics.Result {
	return nil
}

// mismatchedMetric declares span level but implements the session interface.
type mismatchedMetric struct{}

func (*mismatchedMetric) Name() string                                    { return "Mismatched" }
func (*mismatchedMetric) Level() metrics.Level                            { return metrics.LevelSpan }
func (*mismatchedMetric) RequiredParameters() []metrics.RequiredParameter { return nil }
func (*mismatchedMetric) Provider() string                                { return "" }
func (*mismatchedMetric) ComputeSession(context.Context, *sessions.SessionEntity, *metrics.ComputeContext) *metrics.Result {
	return nil
}

// badLevelMetric declares a level that does not exist.
type badLevelMetric struct{}

func (*badLevelMetric) Name() string                                    { return "BadLevel" }
func (*badLevelMetric) Level() metrics.Level                            { return metrics.Level("galaxy") }
func (*badLevelMetric) RequiredParameters() []metrics.RequiredParameter { return nil }
func (*badLevelMetric) Provider() string                                { return "" }

func TestRegister(t *testing.T) {
	r := metrics.NewRegistry()

	if err := r.Register(&stubSessionMetric{name: "First"}); err != nil {
		t.Fatalf("Register(First) = %v", err)
	}
	if err := r.Register(&stubSessionMetric{name: "Second"}); err != nil {
		t.Fatalf("Register(Second) = %v", err)
	}

	if _, ok := r.Get("First"); !ok {
		t.Error("First not found after registration")
	}
	if _, ok := r.Get("Absent"); ok {
		t.Error("Get returned a metric that was never registered")
	}

	want := []string{"First", "Second"}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := metrics.NewRegistry()
	if err := r.Register(&stubSessionMetric{name: "Dup"}); err != nil {
		t.Fatalf("first Register = %v", err)
	}
	err := r.Register(&stubSessionMetric{name: "Dup"})
	if err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	r := metrics.NewRegistry()
	if err := r.Register(&stubSessionMetric{name: ""}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestRegisterRejectsLevelMismatch(t *testing.T) {
	r := metrics.NewRegistry()
	err := r.Register(&mismatchedMetric{})
	if err == nil {
		t.Fatal("expected error for level/interface mismatch")
	}
	if !strings.Contains(err.Error(), "does not implement SpanMetric") {
		t.Errorf("unexpected error: %v", err)
	}
	// The rejected metric must not linger in the registry.
	if _, ok := r.Get("Mismatched"); ok {
		t.Error("rejected metric is resolvable")
	}
}

func TestRegisterRejectsUnknownLevel(t *testing.T) {
	r := metrics.NewRegistry()
	if err := r.Register(&badLevelMetric{}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

// Compile-time check that the real span interface is satisfiable the way the
// registry expects.
type stubSpanMetric struct{}

func (*stubSpanMetric) Name() string                                    { return "StubSpan" }
func (*stubSpanMetric) Level() metrics.Level                            { return metrics.LevelSpan }
func (*stubSpanMetric) RequiredParameters() []metrics.RequiredParameter { return nil }
func (*stubSpanMetric) Provider() string                                { return "" }
func (*stubSpanMetric) EntityTypes() []spans.EntityType                 { return nil }
func (*stubSpanMetric) ComputeSpan(context.Context, *spans.SpanEntity, *metrics.ComputeContext) *metrics.Result {
	return nil
}

func TestRegisterSpanMetric(t *testing.T) {
	r := metrics.NewRegistry()
	if err := r.Register(&stubSpanMetric{}); err != nil {
		t.Fatalf("Register = %v", err)
	}
}
