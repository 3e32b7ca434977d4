/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spans

import "fmt"

// extractToolDefinitions scans the llm spans of a batch for indexed
// function-definition triples (llm.request.functions.{i}.name/description/
// parameters, contiguous from i=0) and builds a name→definition table.
// First occurrence of a name wins. The table is shared across the whole
// batch: tool spans resolve their entity name against it.
func extractToolDefinitions(rawSpans []RawSpan) map[string]*ToolDefinition {
	defs := map[string]*ToolDefinition{}
	for _, raw := range rawSpans {
		if typ, ok := Classify(raw.Name()); !ok || typ != EntityLLM {
			continue
		}
		attrs := raw.Attributes()
		for i := 0; ; i++ {
			name := attributeString(attrs, fmt.Sprintf("llm.request.functions.%d.name", i), "")
			if name == "" {
				break
			}
			if _, exists := defs[name]; !exists {
				defs[name] = &ToolDefinition{
					Description: attributeString(attrs, fmt.Sprintf("llm.request.functions.%d.description", i), ""),
					Parameters:  safeParseJSON(attributeString(attrs, fmt.Sprintf("llm.request.functions.%d.parameters", i), "")),
				}
			}
		}
	}
	return defs
}
