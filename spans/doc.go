/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package spans turns raw instrumentation records emitted during AI-agent
// executions into typed span entities.
//
// Raw records arrive in one of two physical shapes: the canonical collector
// shape (SpanName/SpanAttributes) and a legacy shape (operationName/tags).
// Detect and Normalize reconcile the two; Parse classifies each normalized
// record into an entity type, extracts its payloads, timing, tool
// definitions and error status, and drops records that match no known
// entity type.
package spans
