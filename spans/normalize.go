/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spans

import (
	"strconv"
	"strings"
	"time"
)

// Format is the detected physical shape of a raw record.
type Format string

const (
	// FormatCanonical is the collector shape the rest of the pipeline
	// understands (SpanName, SpanAttributes, Duration in nanoseconds).
	FormatCanonical Format = "canonical"
	// FormatLegacy is the older shape (operationName, tags, durationMicros).
	FormatLegacy Format = "legacy"
	// FormatUnknown is anything else. Unknown records pass through
	// normalization unchanged and typically fail classification later.
	FormatUnknown Format = "unknown"
)

// Detect reports the physical shape of a raw record by the presence of its
// disjoint marker fields.
func Detect(raw RawSpan) Format {
	if _, ok := raw["operationName"]; ok {
		if _, ok := raw["tags"]; ok {
			return FormatLegacy
		}
	}
	if _, ok := raw["SpanName"]; ok {
		if _, ok := raw["SpanAttributes"]; ok {
			return FormatCanonical
		}
	}
	return FormatUnknown
}

// legacyFieldRenames maps legacy top-level fields onto canonical names.
var legacyFieldRenames = map[string]string{
	"operationName": "SpanName",
	"serviceName":   "ServiceName",
	"spanId":        "SpanId",
	"parentId":      "ParentSpanId",
	"traceId":       "TraceId",
}

// Normalize rewrites a raw record into the canonical shape. Canonical and
// unknown records are returned unchanged, which makes normalization
// idempotent.
func Normalize(raw RawSpan) RawSpan {
	if Detect(raw) != FormatLegacy {
		return raw
	}

	converted := make(RawSpan, len(raw)+4)
	for k, v := range raw {
		converted[k] = v
	}

	for legacy, canonical := range legacyFieldRenames {
		if v, ok := raw[legacy]; ok {
			converted[canonical] = v
		}
	}

	attrs := map[string]any{}
	if tags, ok := raw["tags"].(map[string]any); ok {
		for k, v := range tags {
			attrs[k] = v
		}
	}

	// Sessions are grouped by session.id. Legacy records rarely carry one,
	// so fall back to the trace id to keep grouping intact.
	if attrs["session.id"] == nil && attrs["execution.id"] == nil {
		if traceID, ok := raw["traceId"]; ok {
			attrs["session.id"] = traceID
		}
	}

	if startTime, ok := raw["startTime"].(string); ok {
		converted["Timestamp"] = startTime
		attrs["ioa_start_time"] = epochString(startTime)
	}

	converted["SpanAttributes"] = attrs

	// Legacy durations are microseconds; the canonical unit is nanoseconds.
	if micros, ok := numeric(raw["durationMicros"]); ok {
		converted["Duration"] = micros * 1000
	}

	return converted
}

// epochString converts an ISO-8601 timestamp into an epoch-second string,
// falling back to a raw numeric parse and then to passthrough on failure.
func epochString(value string) string {
	if strings.Contains(value, "T") && strings.Contains(value, "Z") {
		if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', -1, 64)
		}
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return value
}

// numeric coerces the JSON number representations we see on the wire.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
