// Package metrics holds Prometheus instruments that are used across the
// renderer.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Upstream HTTP calls by service and outcome.",
		}, []string{"service", "outcome"})

	UpstreamRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_seconds",
			Help:    "Latency of upstream HTTP calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"})

	ResolverLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_lookups_total",
			Help: "Customer-code resolutions by source (static, memo, upstream, error).",
		}, []string{"source"})

	SettingsAggregationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_aggregations_total",
			Help: "Settings aggregations by outcome (complete, partial, empty).",
		}, []string{"outcome"})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Served HTTP requests by status code.",
		}, []string{"code"})

	HTTPRequestSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "http_request_seconds",
			Help:    "Latency of served HTTP requests.",
			Buckets: prometheus.DefBuckets,
		})

	ActiveTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_tenant_requests",
			Help: "Tenant requests currently being served.",
		})
)

func init() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestSeconds,
		ResolverLookupsTotal,
		SettingsAggregationsTotal,
		HTTPRequestsTotal,
		HTTPRequestSeconds,
		ActiveTenants,
	)
}

// ObserveUpstream records one upstream call.
func ObserveUpstream(service, outcome string, took time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(service, outcome).Inc()
	UpstreamRequestSeconds.WithLabelValues(service).Observe(took.Seconds())
}

// ObserveHTTP records one served request.
func ObserveHTTP(code string, took time.Duration) {
	HTTPRequestsTotal.WithLabelValues(code).Inc()
	HTTPRequestSeconds.Observe(took.Seconds())
}
