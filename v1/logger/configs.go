package logger

import (
	"os"
	"strconv"
	"strings"
)

// Level is the minimum severity an entry needs to be emitted.
type Level string

// Supported log levels.
const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum level to emit. Default: Info.
	Level Level

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string

	// EnableTracing makes the *WithContext methods attach trace_id and
	// span_id extracted from the context.
	EnableTracing bool
}

// NewConfig reads the configuration from environment variables:
//
//	ZAP_LOGGER_LEVEL
//	LOGGER_SERVICE_NAME
//	LOGGER_ENABLE_TRACING
func NewConfig() Config {
	cfg := Config{
		Level:       Info,
		ServiceName: os.Getenv("LOGGER_SERVICE_NAME"),
	}

	switch Level(strings.ToLower(os.Getenv("ZAP_LOGGER_LEVEL"))) {
	case Debug:
		cfg.Level = Debug
	case Warning:
		cfg.Level = Warning
	case Error:
		cfg.Level = Error
	}

	if v := os.Getenv("LOGGER_ENABLE_TRACING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableTracing = b
		}
	}

	return cfg
}
