/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package sessionmetrics holds the native session-level metrics.
package sessionmetrics
