package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobmatch_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	MatchComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobmatch_match_computations_total",
			Help: "Total number of candidate/job match computations",
		},
	)

	RankedListings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmatch_ranked_listings_total",
			Help: "Total number of ranked job listings served, by cache outcome",
		},
		[]string{"cache"},
	)

	TrackerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmatch_tracker_operations_total",
			Help: "Total number of tracked application operations, by operation and result",
		},
		[]string{"op", "result"},
	)

	CatalogImportedJobs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobmatch_catalog_imported_jobs_total",
			Help: "Total number of catalog rows imported",
		},
	)
)

// Result labels an operation outcome.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
