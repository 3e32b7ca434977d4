/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spans

import (
	"context"
	"regexp"
	"strings"

	"github.com/chainguard-dev/clog"
)

// suffixTypes maps a lower-cased operation-name suffix to an entity type.
var suffixTypes = []struct {
	suffix string
	typ    EntityType
}{
	{".chat", EntityLLM},
	{".tool", EntityTool},
	{".agent", EntityAgent},
	{".workflow", EntityWorkflow},
	{".graph", EntityGraph},
	{".task", EntityTask},
}

// overrideRule reclassifies spans whose names follow framework-specific
// conventions that the suffix mapping misses. Rules are evaluated in order;
// new agent frameworks extend this list without touching classification.
type overrideRule struct {
	matches func(name string) bool
	typ     EntityType
}

var overrideRules = []overrideRule{
	// Autogen group creation spans are the workflow boundary.
	{func(name string) bool { return strings.Contains(name, "autogen create") }, EntityWorkflow},
	// Autogen names its agent spans "autogen process <Agent>_<uuid>...".
	{func(name string) bool { return strings.Contains(name, "autogen process") }, EntityAgent},
}

// Classify maps an operation name to an entity type. The second return is
// false for records matching no rule; those are discarded, not emitted.
func Classify(name string) (EntityType, bool) {
	lowered := strings.ToLower(name)
	for _, rule := range overrideRules {
		if rule.matches(lowered) {
			return rule.typ, true
		}
	}
	for _, st := range suffixTypes {
		if strings.HasSuffix(lowered, st.suffix) {
			return st.typ, true
		}
	}
	return "", false
}

// payloadConfig describes where each entity type keeps its name and payloads.
type payloadConfig struct {
	entityNameKey string
	inputKey      string
	outputKey     string
}

var payloadConfigs = map[EntityType]payloadConfig{
	EntityLLM:      {entityNameKey: "gen_ai.response.model"},
	EntityTool:     {entityNameKey: "traceloop.entity.name", inputKey: "traceloop.entity.input", outputKey: "traceloop.entity.output"},
	EntityAgent:    {entityNameKey: "ioa_observe.entity.name", inputKey: "ioa_observe.entity.input", outputKey: "ioa_observe.entity.output"},
	EntityWorkflow: {entityNameKey: "ioa_observe.workflow.name", inputKey: "traceloop.entity.input", outputKey: "traceloop.entity.output"},
	EntityGraph:    {entityNameKey: "ioa_observe.workflow.name", inputKey: "traceloop.entity.input", outputKey: "traceloop.entity.output"},
	EntityTask:     {entityNameKey: "traceloop.entity.name", inputKey: "traceloop.entity.input", outputKey: "traceloop.entity.output"},
}

// autogenAgentName captures the agent name out of spans like
// "autogen process MultimodalWebSurfer_01f41b74-...".
var autogenAgentName = regexp.MustCompile(`autogen process (\w+)_`)

// Parse normalizes a batch of raw records and builds a SpanEntity for every
// record that classifies to a known entity type. Order is preserved;
// unclassifiable records are silently omitted.
func Parse(ctx context.Context, rawSpans []RawSpan) []*SpanEntity {
	if len(rawSpans) == 0 {
		return nil
	}

	normalized := make([]RawSpan, 0, len(rawSpans))
	for _, raw := range rawSpans {
		normalized = append(normalized, Normalize(raw))
	}

	// Tool definitions are advertised on llm spans but resolved by tool
	// spans, so the table is shared across the whole batch.
	toolDefs := extractToolDefinitions(normalized)

	entities := make([]*SpanEntity, 0, len(normalized))
	dropped := 0
	for _, raw := range normalized {
		entity, ok := buildEntity(raw, toolDefs)
		if !ok {
			dropped++
			continue
		}
		entities = append(entities, entity)
	}
	if dropped > 0 {
		clog.FromContext(ctx).Debugf("dropped %d unclassifiable records out of %d", dropped, len(rawSpans))
	}
	return entities
}

func buildEntity(raw RawSpan, toolDefs map[string]*ToolDefinition) (*SpanEntity, bool) {
	entityType, ok := Classify(raw.Name())
	if !ok {
		return nil, false
	}

	attrs := raw.Attributes()
	config := payloadConfigs[entityType]

	entityName := attributeString(attrs, config.entityNameKey, "unknown")
	if entityType == EntityAgent && entityName == "unknown" {
		entityName = recoverAgentName(raw.Name())
	}

	var inputPayload, outputPayload map[string]any
	var extra *LLMAttributes
	if entityType == EntityLLM {
		inputPayload, outputPayload, extra = llmPayloads(attrs)
	} else {
		inputPayload = ensureMapPayload(genericPayload(attrs[config.inputKey]))
		outputPayload = ensureMapPayload(genericPayload(attrs[config.outputKey]))
	}

	var toolDef *ToolDefinition
	if entityType == EntityTool {
		toolDef = toolDefs[entityName]
	}

	startTime := attributeString(attrs, "ioa_start_time", "")
	endTime := computeEndTime(startTime, raw["Duration"])
	duration := computeDurationMS(startTime, endTime, raw["Duration"])

	sessionID := attributeString(attrs, "session.id", "")
	if sessionID == "" {
		sessionID = attributeString(attrs, "execution.id", "")
	}

	return &SpanEntity{
		EntityType:     entityType,
		SpanID:         stringField(raw, "SpanId"),
		EntityName:     entityName,
		AppName:        appName(raw),
		AgentID:        attributeString(attrs, "agent_id", ""),
		InputPayload:   inputPayload,
		OutputPayload:  outputPayload,
		Message:        attributeString(attrs, "traceloop.entity.message", ""),
		ToolDefinition: toolDef,
		ContainsError:  containsError(attrs, outputPayload),
		Timestamp:      stringField(raw, "Timestamp"),
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       duration,
		ParentSpanID:   stringField(raw, "ParentSpanId"),
		TraceID:        stringField(raw, "TraceId"),
		SessionID:      sessionID,
		Attributes:     extra,
		RawSpanData:    raw,
	}, true
}

// recoverAgentName extracts an agent name from framework-specific span names
// when the name attribute is unresolved.
func recoverAgentName(name string) string {
	lowered := strings.ToLower(name)
	if !strings.Contains(lowered, "autogen process") {
		return "unknown"
	}
	if m := autogenAgentName.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	// Fallback: take whatever precedes the first underscore.
	rest := strings.Replace(name, "autogen process ", "", 1)
	if head, _, found := strings.Cut(rest, "_"); found && head != "" {
		return head
	}
	return "unknown"
}

// appName extracts the application name a span belongs to, checking the
// service fields first and then common attribute patterns.
func appName(raw RawSpan) string {
	if service := stringField(raw, "ServiceName"); service != "" && service != "unknown" {
		return service
	}
	if resourceAttrs, ok := raw["ResourceAttributes"].(map[string]any); ok {
		if service, ok := resourceAttrs["service.name"].(string); ok && service != "" && service != "unknown" {
			return service
		}
	}
	attrs := raw.Attributes()
	for _, key := range []string{
		"app.name",
		"service.name",
		"application.name",
		"traceloop.workflow.name",
		"ioa_workflow.name",
	} {
		if v := attributeString(attrs, key, ""); v != "" {
			return v
		}
	}
	return "unknown-app"
}

func attributeString(attrs map[string]any, key, fallback string) string {
	if s, ok := attrs[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
