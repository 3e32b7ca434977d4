/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/invopop/jsonschema"
)

// claudeJudge implements Interface using the Anthropic messages API.
type claudeJudge struct {
	client anthropic.Client
	model  string
}

// NewClaude creates a judge backed by Claude.
func NewClaude(cfg ModelConfig) (Interface, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("claude judge requires an API key")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &claudeJudge{
		client: anthropic.NewClient(opts...),
		model:  cfg.ModelName,
	}, nil
}

// Judge implements Interface. Claude has no structured-output mode here, so
// the schema is appended to the prompt and the reply is decoded as JSON.
func (c *claudeJudge) Judge(ctx context.Context, prompt string, schema *jsonschema.Schema) (float64, string, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return 0, "", fmt.Errorf("marshaling schema: %w", err)
	}

	fullPrompt := fmt.Sprintf("%s\n\nRespond with a single JSON object matching this schema:\n%s", prompt, schemaJSON)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(fullPrompt),
			},
		}},
	})
	if err != nil {
		return 0, "", fmt.Errorf("messages API: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	content := strings.TrimSpace(sb.String())
	if content == "" {
		return 0, "", errors.New("claude returned no text content")
	}
	return parseGrading(content)
}
