/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics defines the metric contract the engine executes against:
// explicit per-level interfaces, the result model, and the registry that
// maps metric names to implementations.
//
// A metric declares its aggregation level, the session fields it requires,
// an optional entity-type allow-list and an optional judge provider. The
// contract is enforced structurally at registration; there is no runtime
// introspection of metric shapes.
package metrics
