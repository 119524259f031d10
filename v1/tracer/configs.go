package tracer

import (
	"os"
	"strconv"
)

// Config holds the tracer settings.
type Config struct {
	// ServiceName identifies this service in traces.
	ServiceName string

	// AppEnv is the deployment environment attribute, e.g.
	// "production".
	AppEnv string

	// EnableExport ships spans through the OTLP HTTP exporter. The
	// endpoint comes from the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool
}

// NewConfig reads the configuration from environment variables:
//
//	TRACER_SERVICE_NAME
//	APP_ENV
//	TRACER_ENABLE_EXPORT
func NewConfig() Config {
	cfg := Config{
		ServiceName: os.Getenv("TRACER_SERVICE_NAME"),
		AppEnv:      os.Getenv("APP_ENV"),
	}
	if v := os.Getenv("TRACER_ENABLE_EXPORT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableExport = b
		}
	}
	return cfg
}
