/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spans

import (
	"encoding/json"
	"strings"
)

const (
	promptPrefix     = "gen_ai.prompt"
	completionPrefix = "gen_ai.completion"
)

// parseJSONValue attempts to decode an embedded JSON value of any shape.
func parseJSONValue(value string) (any, bool) {
	if value == "" {
		return nil, false
	}
	var out any
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return nil, false
	}
	return out, true
}

// safeParseJSON attempts to decode an embedded JSON object. It returns nil
// for empty input and for anything that does not decode to a mapping.
func safeParseJSON(value string) map[string]any {
	out, ok := parseJSONValue(value)
	if !ok {
		return nil
	}
	if m, ok := out.(map[string]any); ok {
		return m
	}
	return nil
}

// llmPayloads collects the prompt and completion attribute unions for an llm
// span. Completion values are individually attempted as embedded JSON and
// kept raw on failure. Model metadata goes into the side channel, not into
// the payloads.
func llmPayloads(attrs map[string]any) (input, output map[string]any, extra *LLMAttributes) {
	input = map[string]any{}
	output = map[string]any{}
	for key, value := range attrs {
		switch {
		case strings.HasPrefix(key, promptPrefix):
			input[key] = value
		case strings.HasPrefix(key, completionPrefix):
			if s, ok := value.(string); ok {
				if parsed, ok := parseJSONValue(s); ok && parsed != nil {
					output[key] = parsed
					continue
				}
			}
			output[key] = value
		}
	}
	if len(input) == 0 {
		input = nil
	}
	if len(output) == 0 {
		output = nil
	}

	extra = &LLMAttributes{
		ModelName:         attrs["gen_ai.request.model"],
		ModelNameResponse: attrs["gen_ai.response.model"],
		ModelTemperature:  attrs["gen_ai.request.temperature"],
		CacheTokens:       attrs["gen_ai.usage.cache_read_input_tokens"],
		InputTokens:       attrs["gen_ai.usage.prompt_tokens"],
		OutputTokens:      attrs["gen_ai.usage.completion_tokens"],
		TotalTokens:       attrs["llm.usage.total_tokens"],
	}
	return input, output, extra
}

// genericPayload parses a single-key payload. Strings are attempted as
// embedded JSON; a string that fails to parse is kept, to be wrapped by
// ensureMapPayload. Non-string values pass through.
func genericPayload(raw any) any {
	if raw == nil {
		return nil
	}
	if s, ok := raw.(string); ok {
		if parsed, ok := parseJSONValue(s); ok && parsed != nil {
			return parsed
		}
		return s
	}
	return raw
}

// ensureMapPayload normalizes a payload so the result is a mapping or nil,
// never a bare scalar. Non-map values are wrapped under a "value" key.
func ensureMapPayload(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	if m, ok := payload.(map[string]any); ok {
		return m
	}
	return map[string]any{"value": payload}
}

// errorMarkers are the substrings that flag an error-like output value.
var errorMarkers = []string{"traceback", "exception", "httperror"}

// containsError reports whether a span carries an explicit error attribute
// or an error-like pattern anywhere in its output payload.
func containsError(attrs, outputPayload map[string]any) bool {
	if v, ok := attrs["traceloop.entity.error"]; ok && truthy(v) {
		return true
	}
	return scanForErrorMarkers(outputPayload)
}

// scanForErrorMarkers walks every string leaf of a nested structure looking
// for error-indicative substrings, case-insensitively.
func scanForErrorMarkers(value any) bool {
	switch v := value.(type) {
	case map[string]any:
		for _, nested := range v {
			if scanForErrorMarkers(nested) {
				return true
			}
		}
	case []any:
		for _, nested := range v {
			if scanForErrorMarkers(nested) {
				return true
			}
		}
	case string:
		lowered := strings.ToLower(v)
		for _, marker := range errorMarkers {
			if strings.Contains(lowered, marker) {
				return true
			}
		}
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false" && t != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	case nil:
		return false
	default:
		return true
	}
}
