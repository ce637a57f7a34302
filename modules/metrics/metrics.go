// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics holds the prometheus collectors of the history and diff services
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "githistory"

var (
	// SessionsActive is the number of sessions currently held by the session store
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "active",
		Help:      "Number of history sessions held in memory",
	})

	// SessionsEvicted counts sessions removed because the store was full
	SessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "evicted_total",
		Help:      "Total history sessions evicted by the least recently used bound",
	})

	// PagesServed counts history pages by query kind (default, revision, revisions, resume)
	PagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "history",
		Name:      "pages_total",
		Help:      "Total history pages served",
	}, []string{"query"})

	// CommitsEmitted counts the commit records sent to clients
	CommitsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "history",
		Name:      "commits_total",
		Help:      "Total commit records emitted",
	})

	// WalkDuration measures one page walk including root resolution
	WalkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "history",
		Name:      "walk_duration_seconds",
		Help:      "Time to resolve the roots and walk one page",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"query"})

	// DiffSummaryCache counts diff summary lookups by result (hit, miss)
	DiffSummaryCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "diff",
		Name:      "summary_cache_total",
		Help:      "Diff summary cache lookups",
	}, []string{"result"})
)

// Handler serves the collectors in the prometheus text exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}
