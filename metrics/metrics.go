package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "liquidation_queue"

// Metrics holds the prometheus collectors of the query server
type Metrics struct {
	registry *prometheus.Registry

	QueryRequests *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	PlanOutcomes  *prometheus.CounterVec
	ConfigUpdates *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry, so several
// servers can live in one process
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		QueryRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_requests_total",
			Help:      "Requests served, by route and status code",
		}, []string{"route", "code"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		PlanOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "liquidation_plans_total",
			Help:      "Liquidation amount computations, by outcome",
		}, []string{"outcome"}),
		ConfigUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_updates_total",
			Help:      "Config update attempts, by result",
		}, []string{"result"}),
	}
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
