/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

// SystemPrompt frames every grading request.
const SystemPrompt = "You are a fair judge assistant tasked with grading a response. " +
	"Reply with a JSON object matching the provided schema."
