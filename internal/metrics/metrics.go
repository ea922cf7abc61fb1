// Package metrics registers the service's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the click-tracking counters. Button names are not used as
// labels to keep cardinality bounded.
type Metrics struct {
	registry *prometheus.Registry

	ClicksRecorded prometheus.Counter
	ClicksRejected prometheus.Counter
	IngestFailures prometheus.Counter
	EventsPurged   prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		ClicksRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicktrack_clicks_recorded_total",
			Help: "Click events accepted and persisted.",
		}),
		ClicksRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicktrack_clicks_rejected_total",
			Help: "Click submissions rejected by validation.",
		}),
		IngestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicktrack_ingest_failures_total",
			Help: "Click submissions that failed at the store and were dropped.",
		}),
		EventsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicktrack_events_purged_total",
			Help: "Click events removed by the retention job.",
		}),
	}

	registry.MustRegister(m.ClicksRecorded, m.ClicksRejected, m.IngestFailures, m.EventsPurged)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
