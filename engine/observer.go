/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	computationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mce_metric_computations_total",
			Help: "Total number of metric computations performed",
		},
		[]string{"metric", "level"},
	)

	failureCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mce_metric_computation_failures_total",
			Help: "Total number of metric computations that produced a failure result",
		},
		[]string{"metric", "level"},
	)

	cacheHitCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mce_metric_cache_hits_total",
			Help: "Total number of metric results served from the result cache",
		},
		[]string{"metric"},
	)
)

// observe records one finished computation.
func observe(metricName string, level string, success bool) {
	labels := prometheus.Labels{"metric": metricName, "level": level}
	computationCounter.With(labels).Inc()
	if !success {
		failureCounter.With(labels).Inc()
	}
}
