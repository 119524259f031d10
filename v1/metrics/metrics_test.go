package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/skylarkhq/vikingdb-go/v1/observability"
)

func newTestMetrics() *Metrics {
	return NewMetrics(Config{
		Address:     ":0",
		ServiceName: "test",
	})
}

func TestRecordOperation(t *testing.T) {
	m := newTestMetrics()
	m.RecordOperation("vikingdb", "upsert", "success", 20*time.Millisecond, 512)
	m.RecordOperation("vikingdb", "upsert", "error", 5*time.Millisecond, 0)

	if got := testutil.ToFloat64(m.operationsTotal.WithLabelValues("vikingdb", "upsert", "success")); got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.operationsTotal.WithLabelValues("vikingdb", "upsert", "error")); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
}

func TestObserverMapsStatus(t *testing.T) {
	m := newTestMetrics()
	obs := NewObserver(m)

	obs.ObserveOperation(observability.OperationContext{
		Component: "transfer",
		Operation: "run",
		Duration:  time.Second,
		Size:      100,
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "transfer",
		Operation: "run",
		Duration:  time.Second,
		Error:     errors.New("boom"),
	})

	if got := testutil.ToFloat64(m.operationsTotal.WithLabelValues("transfer", "run", "success")); got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.operationsTotal.WithLabelValues("transfer", "run", "error")); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
}

func TestCreateCounterRegisters(t *testing.T) {
	m := newTestMetrics()
	c := m.CreateCounter("custom_total", "A custom counter", []string{"kind"})
	c.WithLabelValues("a").Add(3)

	if got := testutil.ToFloat64(c.WithLabelValues("a")); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	if n := testutil.CollectAndCount(c); n != 1 {
		t.Errorf("expected 1 series, got %d", n)
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("METRICS_ADDRESS", "")
	t.Setenv("METRICS_ENABLE_DEFAULT_COLLECTORS", "")

	cfg := NewConfig()
	if cfg.Address != DefaultAddress {
		t.Errorf("expected default address, got %q", cfg.Address)
	}
	if !cfg.EnableDefaultCollectors {
		t.Error("expected default collectors enabled")
	}
}
