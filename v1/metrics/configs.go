package metrics

import (
	"os"
	"strconv"
)

// DefaultAddress is the listen address used when none is configured.
const DefaultAddress = ":9090"

// Config holds the metrics server settings.
type Config struct {
	// Address is the listen address of the /metrics server.
	// Default: ":9090".
	Address string

	// ServiceName is added as a constant service label on every metric.
	ServiceName string

	// EnableDefaultCollectors registers the Go runtime, process and
	// build info collectors.
	EnableDefaultCollectors bool
}

// NewConfig reads the configuration from environment variables:
//
//	METRICS_ADDRESS
//	METRICS_SERVICE_NAME
//	METRICS_ENABLE_DEFAULT_COLLECTORS
func NewConfig() Config {
	cfg := Config{
		Address:                 os.Getenv("METRICS_ADDRESS"),
		ServiceName:             os.Getenv("METRICS_SERVICE_NAME"),
		EnableDefaultCollectors: true,
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if v := os.Getenv("METRICS_ENABLE_DEFAULT_COLLECTORS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableDefaultCollectors = b
		}
	}
	return cfg
}
