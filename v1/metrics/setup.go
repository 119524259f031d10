package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server that
// exposes it at /metrics.
type Metrics struct {
	// Server exposes the /metrics endpoint.
	Server *http.Server

	// Registry is this instance's isolated Prometheus registry. Each
	// service keeps its own registry to prevent metric name collisions.
	Registry *prometheus.Registry

	// Built-in API operation metrics
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	payloadBytes      *prometheus.HistogramVec
}

// NewMetrics builds a Metrics instance: an isolated registry with the
// built-in operation collectors, all metrics wrapped with a constant
// service label, and an HTTP server serving the registry at /metrics.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "vikingdb-transfer",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// Every metric carries service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{Registry: registry}

	m.operationsTotal = newCounterVec(
		"vikingdb_operations_total",
		"Total number of API operations by component, operation and status",
		[]string{"component", "operation", "status"},
	)
	m.operationDuration = newHistogramVec(
		"vikingdb_operation_duration_seconds",
		"Duration of API operations in seconds",
		[]string{"component", "operation"},
		prometheus.DefBuckets,
	)
	m.payloadBytes = newHistogramVec(
		"vikingdb_operation_payload_bytes",
		"Response payload size of API operations in bytes",
		[]string{"component", "operation"},
		prometheus.ExponentialBuckets(64, 4, 10),
	)

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.payloadBytes,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}
