/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sessions

import "chainguard.dev/agenteval/spans"

// TreeNode is one span linked to its children in the execution tree.
type TreeNode struct {
	Span     *spans.SpanEntity `json:"span"`
	Children []*TreeNode       `json:"children,omitempty"`
}

// ExecutionTree reconstructs the parent/child structure of the session from
// declared parent span ids. Spans whose parent is absent or outside the
// session become roots. Children keep sequence order.
func (s *SessionEntity) ExecutionTree() []*TreeNode {
	nodes := make(map[string]*TreeNode, len(s.Spans))
	ordered := make([]*TreeNode, 0, len(s.Spans))
	for _, span := range s.Spans {
		node := &TreeNode{Span: span}
		ordered = append(ordered, node)
		if span.SpanID != "" {
			nodes[span.SpanID] = node
		}
	}

	var roots []*TreeNode
	for _, node := range ordered {
		parent, ok := nodes[node.Span.ParentSpanID]
		if !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}
