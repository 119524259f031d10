package metrics

import (
	"github.com/skylarkhq/vikingdb-go/v1/observability"
)

// Observer adapts a Metrics instance to observability.Observer, so API
// clients can report operations without importing Prometheus.
type Observer struct {
	metrics *Metrics
}

// NewObserver wraps a Metrics instance.
func NewObserver(m *Metrics) *Observer {
	return &Observer{metrics: m}
}

// ObserveOperation records one operation outcome. Errors are counted
// under status "error", successes under "success".
func (o *Observer) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}
	o.metrics.RecordOperation(ctx.Component, ctx.Operation, status, ctx.Duration, ctx.Size)
}
