/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"

	"github.com/invopop/jsonschema"
)

// Interface is the contract judge implementations expose to metrics: score
// a prompt against a grading schema and explain the score.
type Interface interface {
	// Judge grades the prompt against the provided grading schema and
	// returns the score with its reasoning.
	Judge(ctx context.Context, prompt string, schema *jsonschema.Schema) (float64, string, error)
}

// ModelConfig carries the provider-independent judge settings.
type ModelConfig struct {
	BaseURL   string `env:"LLM_BASE_MODEL_URL, default=https://api.openai.com/v1" json:"base_url"`
	ModelName string `env:"LLM_MODEL_NAME, default=gpt-4-turbo" json:"model_name"`
	APIKey    string `env:"LLM_API_KEY" json:"-"`
}
