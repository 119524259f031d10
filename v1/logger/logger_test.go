package logger

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(tracing bool) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{Zap: zap.New(core), tracingEnabled: tracing}, logs
}

func TestToZapFields(t *testing.T) {
	fields := toZapFields(nil, map[string]interface{}{"a": 1}, map[string]interface{}{"b": "x"})
	if len(fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(fields))
	}

	fields = toZapFields(errors.New("boom"), map[string]interface{}{"a": 1})
	if len(fields) != 2 {
		t.Errorf("expected 2 fields including error, got %d", len(fields))
	}
}

func TestLevelsAndFields(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.Info("hello", nil, map[string]interface{}{"k": "v"})
	log.Error("bad", errors.New("boom"), nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "hello" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
	if entries[0].ContextMap()["k"] != "v" {
		t.Errorf("expected field k=v, got %v", entries[0].ContextMap())
	}
	if entries[1].ContextMap()["error"] != "boom" {
		t.Errorf("expected error field, got %v", entries[1].ContextMap())
	}
}

func TestWithContext_NoSpanAddsNoTraceFields(t *testing.T) {
	log, logs := newObservedLogger(true)

	log.InfoWithContext(context.Background(), "no span", nil, nil)

	entry := logs.All()[0]
	if _, ok := entry.ContextMap()["trace_id"]; ok {
		t.Error("expected no trace_id without an active span")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("ZAP_LOGGER_LEVEL", "")
	t.Setenv("LOGGER_ENABLE_TRACING", "")

	cfg := NewConfig()
	if cfg.Level != Info {
		t.Errorf("expected default level info, got %q", cfg.Level)
	}
	if cfg.EnableTracing {
		t.Error("expected tracing disabled by default")
	}
}

func TestNewConfig_ParsesLevel(t *testing.T) {
	t.Setenv("ZAP_LOGGER_LEVEL", "DEBUG")
	if cfg := NewConfig(); cfg.Level != Debug {
		t.Errorf("expected debug, got %q", cfg.Level)
	}
}
