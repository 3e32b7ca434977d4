/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package modelhandler owns the provider→model cache the engine resolves
// judge models through. The cache is scoped to the handler instance, not
// process-wide; one engine owns one handler with a defined lifetime.
package modelhandler

import (
	"context"
	"fmt"
	"sync"

	"chainguard.dev/agenteval/judge"
	"github.com/chainguard-dev/clog"
)

// ProviderNone marks metrics that compute without a judge.
const ProviderNone = "none"

// Factory constructs a judge for a provider. Injected so tests and callers
// with custom providers can swap construction.
type Factory func(provider string, cfg judge.ModelConfig) (judge.Interface, error)

// DefaultFactory wires the built-in providers.
func DefaultFactory(provider string, cfg judge.ModelConfig) (judge.Interface, error) {
	switch provider {
	case "openai":
		return judge.NewOpenAI(cfg)
	case "anthropic":
		return judge.NewClaude(cfg)
	default:
		return nil, fmt.Errorf("unknown judge provider %q", provider)
	}
}

// Handler caches one judge instance per (provider, config) key. The
// read-check-create-store sequence is atomic: N simultaneous first-use
// requests for a key construct exactly one instance.
type Handler struct {
	mu      sync.Mutex
	models  map[string]judge.Interface
	factory Factory
}

// New creates a handler around the given factory; nil uses DefaultFactory.
func New(factory Factory) *Handler {
	if factory == nil {
		factory = DefaultFactory
	}
	return &Handler{
		models:  map[string]judge.Interface{},
		factory: factory,
	}
}

// GetOrCreate returns the cached judge for (provider, cfg), creating it on
// first use. A "none" or empty provider resolves to nil without touching
// the factory.
func (h *Handler) GetOrCreate(ctx context.Context, provider string, cfg judge.ModelConfig) (judge.Interface, error) {
	if provider == "" || provider == ProviderNone {
		return nil, nil
	}

	key := fmt.Sprintf("%s|%s|%s", provider, cfg.BaseURL, cfg.ModelName)

	// Construction happens under the lock so a key is only ever built once,
	// even under concurrent first use. Judge construction is cheap (no
	// network round trip), so holding the lock across it is fine.
	h.mu.Lock()
	defer h.mu.Unlock()

	if model, ok := h.models[key]; ok {
		return model, nil
	}

	model, err := h.factory(provider, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating %s model: %w", provider, err)
	}
	h.models[key] = model
	clog.FromContext(ctx).Infof("created judge model for provider %s (%s)", provider, cfg.ModelName)
	return model, nil
}

// Len reports the number of cached models.
func (h *Handler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.models)
}
