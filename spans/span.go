/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spans

// EntityType identifies the semantic kind of a span.
type EntityType string

const (
	EntityLLM      EntityType = "llm"
	EntityTool     EntityType = "tool"
	EntityAgent    EntityType = "agent"
	EntityWorkflow EntityType = "workflow"
	EntityGraph    EntityType = "graph"
	EntityTask     EntityType = "task"
)

// RawSpan is one record as it comes off the wire. The attribute surface is
// free-form, so we keep it as a map and go through typed accessors.
type RawSpan map[string]any

// Name returns the operation name of the record, or "" when absent.
func (r RawSpan) Name() string {
	return stringField(r, "SpanName")
}

// Attributes returns the span attribute map, or nil when absent.
func (r RawSpan) Attributes() map[string]any {
	if attrs, ok := r["SpanAttributes"].(map[string]any); ok {
		return attrs
	}
	return nil
}

// LLMAttributes is the side channel of model metadata extracted from llm
// spans. It is not part of the input or output payload.
type LLMAttributes struct {
	ModelName         any `json:"model_name"`
	ModelNameResponse any `json:"model_name_response"`
	ModelTemperature  any `json:"model_temperature"`
	CacheTokens       any `json:"cache_tokens"`
	InputTokens       any `json:"input_tokens"`
	OutputTokens      any `json:"output_tokens"`
	TotalTokens       any `json:"total_tokens"`
}

// ToolDefinition describes one tool advertised to an LLM.
type ToolDefinition struct {
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// SpanEntity is the canonical, typed form of one raw record. Instances are
// built once per batch and are read-only afterwards.
type SpanEntity struct {
	EntityType EntityType `json:"entity_type"`
	SpanID     string     `json:"span_id"`
	EntityName string     `json:"entity_name"`
	AppName    string     `json:"app_name"`
	AgentID    string     `json:"agent_id,omitempty"`

	// Payloads are always a mapping or nil, never a bare scalar.
	InputPayload  map[string]any `json:"input_payload,omitempty"`
	OutputPayload map[string]any `json:"output_payload,omitempty"`

	Message        string          `json:"message,omitempty"`
	ToolDefinition *ToolDefinition `json:"tool_definition,omitempty"`
	ContainsError  bool            `json:"contains_error"`

	// Times are epoch-second strings as produced by the collector; Duration
	// is milliseconds. Any of them may be absent when the raw record carried
	// unparseable timing.
	Timestamp string   `json:"timestamp"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`

	ParentSpanID string `json:"parent_span_id,omitempty"`
	TraceID      string `json:"trace_id,omitempty"`
	SessionID    string `json:"session_id,omitempty"`

	// Attributes holds llm model metadata for llm spans, nil otherwise.
	Attributes *LLMAttributes `json:"attrs,omitempty"`

	// RawSpanData retains the original record for metrics that need fields
	// the canonical model does not map.
	RawSpanData RawSpan `json:"raw_span_data"`
}

func stringField(r RawSpan, key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}
