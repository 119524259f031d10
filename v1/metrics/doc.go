// Package metrics exposes Prometheus metrics for the VikingDB client
// modules.
//
// Each Metrics instance owns an isolated Prometheus registry and an
// HTTP server serving /metrics, so multiple services in one process do
// not collide. Built-in collectors track API operation counts, latency
// and payload sizes; NewObserver adapts a Metrics instance into an
// observability.Observer that the vikingdb and transfer clients accept,
// so every signed API call is measured without the clients knowing
// about Prometheus.
//
// Usage:
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "vikingdb-transfer",
//	})
//	client.WithObserver(metrics.NewObserver(m))
//	go m.Server.ListenAndServe()
//
// With Fx, FXModule provides *Metrics and the Observer, and manages the
// server lifecycle.
package metrics
