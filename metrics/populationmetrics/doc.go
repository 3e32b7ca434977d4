/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package populationmetrics holds the native population-level metrics,
// computed once over a whole session set.
package populationmetrics
