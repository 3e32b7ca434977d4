/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package engine executes registered metrics against a session set.
//
// For every (metric, applicable unit) pair the engine walks the same state
// machine: applicability → model resolution → cache lookup → compute →
// result assembly. All applicable pairs are scheduled as independent
// concurrent tasks under an optional global bound; a fault inside one
// metric becomes a failed result and never affects siblings. Results come
// back partitioned into span, session and population buckets; no ordering
// is guaranteed between concurrently computed results.
package engine
