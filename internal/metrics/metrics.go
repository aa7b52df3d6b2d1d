// Package metrics holds the Prometheus collectors exported by the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog load outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeInvalidJSON = "invalid_json"
	OutcomeInvalidType = "invalid_type"
	OutcomeReadFailure = "read_failure"
)

// Metrics groups the collectors so tests can use a private registry
type Metrics struct {
	CatalogLoads    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CatalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "catalog_loads_total",
			Help:      "Catalog file loads by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.CatalogLoads, m.RequestDuration)
	return m
}

// CatalogLoaded records one load outcome
func (m *Metrics) CatalogLoaded(outcome string) {
	if m == nil {
		return
	}
	m.CatalogLoads.WithLabelValues(outcome).Inc()
}
