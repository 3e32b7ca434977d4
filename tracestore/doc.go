/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package tracestore queries an external trace store over HTTP for raw
// span batches, by session id, by time range, or for the most recent N
// sessions. Persistence itself lives in the store; this is only a client.
package tracestore
