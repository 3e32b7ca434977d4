/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge defines the minimal interface the metrics engine uses to
// score text with an LLM, plus OpenAI and Claude implementations.
//
// The engine never constructs judges itself; they are resolved through the
// model handler and injected into metric computations. A metric that needs
// no judge never sees this package.
package judge
