// Package metrics defines the Prometheus collectors for the guide engine.
// Collectors are registered explicitly from main, not via init.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// QueriesTotal counts dispatched queries by resolved intent.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bunfree_queries_total",
			Help: "Queries processed, labeled by resolved intent.",
		},
		[]string{"intent"},
	)

	// PipelineFailuresTotal counts queries that hit the top-level error
	// boundary.
	PipelineFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bunfree_pipeline_failures_total",
			Help: "Queries answered with the generic failure message.",
		},
	)

	// EmptyResultsTotal counts retrievals that produced no hits, by strategy.
	EmptyResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bunfree_empty_results_total",
			Help: "Retrievals that returned no hits, labeled by strategy.",
		},
		[]string{"strategy"},
	)

	// RetrievalDuration observes vector/filter lookup latency per collection.
	RetrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bunfree_retrieval_duration_seconds",
			Help:    "Latency of Qdrant lookups, labeled by collection.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection"},
	)

	// GenerationDuration observes model generation call latency by purpose.
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bunfree_generation_duration_seconds",
			Help:    "Latency of generation calls, labeled by purpose.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"purpose"},
	)
)

// Register registers all engine collectors on the given registerer.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		QueriesTotal,
		PipelineFailuresTotal,
		EmptyResultsTotal,
		RetrievalDuration,
		GenerationDuration,
	)
}
