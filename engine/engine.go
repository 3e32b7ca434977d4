/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chainguard.dev/agenteval/cache"
	"chainguard.dev/agenteval/judge"
	"chainguard.dev/agenteval/metrics"
	"chainguard.dev/agenteval/modelhandler"
	"chainguard.dev/agenteval/sessions"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Options configures an engine instance.
type Options struct {
	// Registry supplies the metrics to execute. Required.
	Registry *metrics.Registry

	// Models resolves judge providers. Nil gets a fresh handler with the
	// default factory.
	Models *modelhandler.Handler

	// Cache is the result-cache read path. Nil disables cache lookups
	// regardless of Config.CacheEnabled.
	Cache cache.Reader

	// ModelConfig is handed to the model handler when a metric declares a
	// provider.
	ModelConfig judge.ModelConfig

	Config Config
}

// Engine runs registered metrics over a session set. One engine invocation
// processes one batch.
type Engine struct {
	registry *metrics.Registry
	models   *modelhandler.Handler
	cache    cache.Reader
	modelCfg judge.ModelConfig
	cfg      Config
}

// New validates the options and builds an engine. Misconfiguration is
// fatal here, never silently absorbed.
func New(opts Options) (*Engine, error) {
	if opts.Registry == nil {
		return nil, errors.New("engine requires a metric registry")
	}
	models := opts.Models
	if models == nil {
		models = modelhandler.New(nil)
	}
	return &Engine{
		registry: opts.Registry,
		models:   models,
		cache:    opts.Cache,
		modelCfg: opts.ModelConfig,
		cfg:      opts.Config,
	}, nil
}

// Results is the engine output: one unordered bucket per aggregation level.
type Results struct {
	SpanMetrics       []*metrics.Result `json:"span_metrics"`
	SessionMetrics    []*metrics.Result `json:"session_metrics"`
	PopulationMetrics []*metrics.Result `json:"population_metrics"`
}

// task is one scheduled (metric, unit) computation.
type task func(ctx context.Context) *metrics.Result

// Compute runs every registered metric against every applicable unit of the
// set and returns the three result buckets. It returns an error only for
// absent input; individual metric failures come back as failure results.
func (e *Engine) Compute(ctx context.Context, set *sessions.SessionSet) (*Results, error) {
	if set == nil || set.Len() == 0 {
		return nil, errors.New("no sessions to compute metrics over")
	}

	tracer := otel.Tracer("chainguard.dev/agenteval/engine")
	ctx, span := tracer.Start(ctx, "engine.compute",
		oteltrace.WithAttributes(
			attribute.Int("sessions", set.Len()),
			attribute.Int("metrics", len(e.registry.List())),
		))
	defer span.End()

	tasks, cached := e.plan(ctx, set)
	clog.FromContext(ctx).Infof("scheduling %d metric computations (%d cache hits) across %d sessions",
		len(tasks), len(cached), set.Len())

	var mu sync.Mutex
	collected := make([]*metrics.Result, 0, len(tasks)+len(cached))
	collected = append(collected, cached...)

	g, gctx := errgroup.WithContext(ctx)
	if e.cfg.MaxConcurrency > 0 {
		g.SetLimit(e.cfg.MaxConcurrency)
	}
	for _, t := range tasks {
		g.Go(func() error {
			result := t(gctx)
			mu.Lock()
			collected = append(collected, result)
			mu.Unlock()
			return nil
		})
	}
	// Tasks never return errors; faults are converted to failure results
	// inside the task wrapper.
	_ = g.Wait()

	return assemble(collected, set), nil
}

// plan walks the registry and expands each metric into its applicable
// units, resolving models and consulting the cache up front. Cache hits
// come back separately so they skip scheduling entirely.
func (e *Engine) plan(ctx context.Context, set *sessions.SessionSet) ([]task, []*metrics.Result) {
	log := clog.FromContext(ctx)
	var tasks []task
	var cached []*metrics.Result

	for _, name := range e.registry.List() {
		metric, _ := e.registry.Get(name)
		mc := &metrics.ComputeContext{Set: set}

		if provider := metric.Provider(); provider != "" && provider != modelhandler.ProviderNone {
			model, err := e.models.GetOrCreate(ctx, provider, e.modelCfg)
			if err != nil {
				// A missing model is local to the metrics that need it;
				// the metric decides whether nil is fatal.
				log.Warnf("model resolution for metric %s failed: %v", name, err)
			}
			mc.Model = model
		}

		switch m := metric.(type) {
		case metrics.SpanMetric:
			for _, session := range set.Sessions {
				if result, ok := e.readCache(ctx, name, session.SessionID); ok {
					cached = append(cached, result)
					continue
				}
				for _, sp := range session.Spans {
					if !spanApplicable(m, sp) {
						continue
					}
					tasks = append(tasks, e.spanTask(m, sp, mc))
				}
			}
		case metrics.SessionMetric:
			for _, session := range set.Sessions {
				if !sessionApplicable(metric, session) {
					continue
				}
				if result, ok := e.readCache(ctx, name, session.SessionID); ok {
					cached = append(cached, result)
					continue
				}
				tasks = append(tasks, e.sessionTask(m, session, mc))
			}
		case metrics.PopulationMetric:
			tasks = append(tasks, e.populationTask(m, set, mc))
		}
	}
	return tasks, cached
}

// readCache queries the external result cache when enabled. Hits are
// tagged as cache-sourced. The engine never writes to the cache.
func (e *Engine) readCache(ctx context.Context, metricName, sessionID string) (*metrics.Result, bool) {
	if !e.cfg.CacheEnabled || e.cache == nil {
		return nil, false
	}
	result, ok, err := e.cache.Read(ctx, metricName, sessionID)
	if err != nil {
		clog.FromContext(ctx).Warnf("cache read for %s/%s failed: %v", metricName, sessionID, err)
		return nil, false
	}
	if !ok || result == nil {
		return nil, false
	}
	hit := *result
	hit.Source = metrics.SourceCache
	cacheHitCounter.WithLabelValues(metricName).Inc()
	return &hit, true
}

// assemble partitions results by aggregation level, discards opt-outs and
// back-fills app names from the set's session→app table.
func assemble(collected []*metrics.Result, set *sessions.SessionSet) *Results {
	out := &Results{
		SpanMetrics:       []*metrics.Result{},
		SessionMetrics:    []*metrics.Result{},
		PopulationMetrics: []*metrics.Result{},
	}
	for _, result := range collected {
		if result.IsOptOut() {
			continue
		}
		backfillAppName(result, set)
		switch result.Level {
		case metrics.LevelSpan:
			out.SpanMetrics = append(out.SpanMetrics, result)
		case metrics.LevelSession:
			out.SessionMetrics = append(out.SessionMetrics, result)
		case metrics.LevelPopulation:
			out.PopulationMetrics = append(out.PopulationMetrics, result)
		}
	}
	return out
}

func backfillAppName(result *metrics.Result, set *sessions.SessionSet) {
	if result.AppName != "" || result.Level == metrics.LevelPopulation {
		return
	}
	for _, sessionID := range result.SessionIDs {
		if app, ok := set.AppNames[sessionID]; ok && app != "" {
			result.AppName = app
			return
		}
	}
}

// safeResult invokes compute and converts any fault, panic or nil result,
// into a failure result so one task can never poison its siblings.
func safeResult(m metrics.Metric, compute func() *metrics.Result) (result *metrics.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = metrics.Failure(m, fmt.Sprintf("metric panicked: %v", r))
		}
	}()
	result = compute()
	if result == nil {
		result = metrics.Failure(m, "metric returned no result")
	}
	return result
}
