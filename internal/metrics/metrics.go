package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DragTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_drag_transitions_total",
		Help: "Drag-and-drop status transitions by outcome (committed, rolled_back).",
	}, []string{"outcome"})

	ConsistencyGaps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_consistency_gaps_total",
		Help: "Group operations that stopped after a partial update, by operation.",
	}, []string{"operation"})

	GroupOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_group_operations_total",
		Help: "Group consistency engine operations by kind.",
	}, []string{"operation"})

	ReconciledEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_reconciled_entries_total",
		Help: "Dangling group entries found by the reconciler, by action (reported, removed).",
	}, []string{"action"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taskboard_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
