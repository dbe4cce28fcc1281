// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listings_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listings_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listings_search_queries_total",
			Help: "Total number of listing searches by plan kind and outcome",
		},
		[]string{"plan", "outcome"},
	)

	SearchRowsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listings_search_rows_returned",
			Help:    "Rows returned per listing page",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"plan"},
	)

	ReferenceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listings_reference_cache_lookups_total",
			Help: "Reference data cache lookups by table and result (hit, miss, error)",
		},
		[]string{"table", "result"},
	)
)
