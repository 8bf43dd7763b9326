package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the API.
type Metrics struct {
	Registry      *prometheus.Registry
	RequestsTotal *prometheus.CounterVec
	QueryDuration prometheus.Histogram
	CatalogItems  prometheus.Gauge
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipwatch_http_requests_total",
			Help: "Total HTTP requests served, by route and status.",
		},
		[]string{"route", "status"},
	)
	queryDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flipwatch_query_duration_seconds",
			Help:    "Catalog query engine latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	catalogItems := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flipwatch_catalog_items",
			Help: "Number of items currently in the catalog.",
		},
	)

	registry.MustRegister(requests, queryDuration, catalogItems)

	return &Metrics{
		Registry:      registry,
		RequestsTotal: requests,
		QueryDuration: queryDuration,
		CatalogItems:  catalogItems,
	}
}
