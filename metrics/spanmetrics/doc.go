/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package spanmetrics holds the native span-level metrics.
package spanmetrics
