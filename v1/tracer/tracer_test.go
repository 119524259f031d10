package tracer

import (
	"context"
	"errors"
	"testing"
)

func newTestTracer(t *testing.T) *Tracer {
	t.Helper()
	tc, err := NewClient(Config{ServiceName: "test", AppEnv: "test"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	t.Cleanup(func() { tc.Shutdown(context.Background()) })
	return tc
}

func TestStartSpan(t *testing.T) {
	tc := newTestTracer(t)

	ctx, span := tc.StartSpan(context.Background(), "op")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("expected a valid span context")
	}
	if ctx == nil {
		t.Error("expected a context carrying the span")
	}
}

func TestRecordErrorOnSpan(t *testing.T) {
	tc := newTestTracer(t)

	_, span := tc.StartSpan(context.Background(), "op")
	tc.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()
}

func TestCarrierRoundTrip(t *testing.T) {
	tc := newTestTracer(t)

	ctx, span := tc.StartSpan(context.Background(), "op")
	defer span.End()

	carrier := tc.GetCarrier(ctx)
	if carrier["traceparent"] == "" {
		t.Fatal("expected traceparent header in carrier")
	}

	restored := tc.SetCarrierOnContext(context.Background(), carrier)
	_, child := tc.StartSpan(restored, "child")
	defer child.End()

	if child.SpanContext().TraceID() != span.SpanContext().TraceID() {
		t.Error("expected child to share the parent trace id")
	}
}

func TestSetAttributes(t *testing.T) {
	tc := newTestTracer(t)

	_, span := tc.StartSpan(context.Background(), "op")
	defer span.End()

	tc.SetAttributes(span, map[string]interface{}{
		"str":   "v",
		"int":   1,
		"int64": int64(2),
		"f":     1.5,
		"b":     true,
		"other": struct{ X int }{1},
	})
}
