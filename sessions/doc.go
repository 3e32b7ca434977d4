/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package sessions groups span entities into sessions and derives the
// session-level views metrics consume: per-type partitions, conversation
// transcripts, execution trees, per-agent statistics and boundary
// input/output extraction.
//
// Derived views are pure functions of the span sequence, recomputed on
// demand and never independently mutated.
package sessions
