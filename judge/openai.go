/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openaiJudge implements Interface against any OpenAI-compatible endpoint.
type openaiJudge struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a judge backed by the OpenAI chat completions API.
// The base URL may point at any compatible proxy.
func NewOpenAI(cfg ModelConfig) (Interface, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai judge requires an API key")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openaiJudge{
		client: openai.NewClient(opts...),
		model:  cfg.ModelName,
	}, nil
}

// Judge implements Interface.
func (o *openaiJudge) Judge(ctx context.Context, prompt string, schema *jsonschema.Schema) (float64, string, error) {
	schemaMap, err := SchemaMap(schema)
	if err != nil {
		return 0, "", err
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "grading",
					Schema: schemaMap,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return 0, "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, "", errors.New("chat completion returned no choices")
	}

	clog.FromContext(ctx).Debugf("judge response from %s: %d choices", o.model, len(resp.Choices))
	return parseGrading(resp.Choices[0].Message.Content)
}
