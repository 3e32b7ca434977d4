/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// BinaryGrading is the structured output shape for pass/fail style
// judgments: a 0/1 score plus the reasoning behind it.
type BinaryGrading struct {
	Score     int    `json:"score" jsonschema:"enum=0,enum=1,description=Binary score: 1 when the criterion holds, 0 otherwise"`
	Reasoning string `json:"reasoning" jsonschema:"description=Explanation of the score"`
}

// reflector is configured the way we need for model-facing schemas: inline,
// no $ref indirection, required derived from tags.
var reflector = jsonschema.Reflector{
	RequiredFromJSONSchemaTags: true,
	ExpandedStruct:             true,
	DoNotReference:             true,
}

// BinaryGradingSchema returns the JSON schema for BinaryGrading.
func BinaryGradingSchema() *jsonschema.Schema {
	return reflector.Reflect(&BinaryGrading{})
}

// SchemaMap renders a schema as the generic map shape provider SDKs expect.
func SchemaMap(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}
	return out, nil
}

// parseGrading decodes a model response into the grading shape.
func parseGrading(content string) (float64, string, error) {
	var grading BinaryGrading
	if err := json.Unmarshal([]byte(content), &grading); err != nil {
		return 0, "", fmt.Errorf("decoding grading response: %w", err)
	}
	return float64(grading.Score), grading.Reasoning, nil
}
