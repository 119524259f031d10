package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// toZapFields flattens the optional field maps into zap fields,
// appending the error last when present.
func toZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	n := 0
	for _, m := range fields {
		n += len(m)
	}
	out := make([]zap.Field, 0, n+1)
	for _, m := range fields {
		for k, v := range m {
			out = append(out, zap.Any(k, v))
		}
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}

// traceFields extracts trace_id and span_id from the context when
// tracing is enabled and a span is recording.
func (l *Logger) traceFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

// Debug logs a message at debug level.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, toZapFields(err, fields...)...)
}

// Info logs a message at info level.
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, toZapFields(err, fields...)...)
}

// Warn logs a message at warning level.
func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, toZapFields(err, fields...)...)
}

// Error logs a message at error level.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, toZapFields(err, fields...)...)
}

// Fatal logs a message at fatal level, then exits the process.
func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, toZapFields(err, fields...)...)
}

// DebugWithContext logs at debug level with trace correlation fields.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, append(l.traceFields(ctx), toZapFields(err, fields...)...)...)
}

// InfoWithContext logs at info level with trace correlation fields.
func (l *Logger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, append(l.traceFields(ctx), toZapFields(err, fields...)...)...)
}

// WarnWithContext logs at warning level with trace correlation fields.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, append(l.traceFields(ctx), toZapFields(err, fields...)...)...)
}

// ErrorWithContext logs at error level with trace correlation fields.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, append(l.traceFields(ctx), toZapFields(err, fields...)...)...)
}
