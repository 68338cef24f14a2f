// Package observability holds the prometheus collectors exported on /metrics.
package observability

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	AttemptsRecorded *prometheus.CounterVec
	RoutesAdded      prometheus.Counter
	RoutesArchived   prometheus.Counter
}

func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sendlog_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sendlog_http_request_duration_seconds",
				Help:    "Time taken for HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AttemptsRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sendlog_attempts_recorded_total",
				Help: "Attempts written, by mode",
			},
			[]string{"mode"},
		),
		RoutesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sendlog_routes_added_total",
			Help: "Routes created",
		}),
		RoutesArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sendlog_routes_archived_total",
			Help: "Archive requests that succeeded",
		}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.AttemptsRecorded,
		m.RoutesAdded,
		m.RoutesArchived,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      log.New(os.Stderr, "metrics handler: ", log.LstdFlags),
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
