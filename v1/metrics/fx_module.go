package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/skylarkhq/vikingdb-go/v1/logger"
	"github.com/skylarkhq/vikingdb-go/v1/observability"
)

// FXModule wires the metrics server into Fx.
//
// It provides:
//   - Config                   (NewConfig, from environment)
//   - *Metrics                 (NewMetrics)
//   - observability.Observer   (NewObserver)
//
// and manages the /metrics server's startup and graceful shutdown.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewConfig,
		NewMetrics,
		func(m *Metrics) observability.Observer { return NewObserver(m) },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies for lifecycle
// management.
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    *logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts the Prometheus HTTP server in the
// background on application start and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	m := params.Metrics
	log := params.Logger

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if log != nil {
					log.Info("starting metrics server", nil, map[string]interface{}{
						"address": m.Server.Addr,
					})
				}
				if err := m.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					if log != nil {
						log.Error("metrics server failed", err, nil)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("shutting down metrics server", nil, nil)
			}
			return m.Server.Shutdown(ctx)
		},
	})
}
