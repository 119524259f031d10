// Package tracer provides distributed tracing for the VikingDB client
// modules, built on OpenTelemetry.
//
// It wraps an OpenTelemetry TracerProvider with a small API for
// creating spans, recording errors, attaching attributes, and carrying
// trace context across service boundaries via W3C Trace Context
// headers. When export is enabled, spans are shipped through an OTLP
// HTTP exporter; the endpoint comes from the standard OTEL_* variables.
//
// Usage:
//
//	tc, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "vikingdb-transfer",
//		AppEnv:       "production",
//		EnableExport: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	ctx, span := tc.StartSpan(ctx, "transfer-run")
//	defer span.End()
//
// The Tracer is safe for concurrent use.
package tracer
