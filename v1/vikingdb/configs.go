package vikingdb

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults applied by Validate when the corresponding field is unset.
const (
	DefaultService      = "vikingdb"
	DefaultVersion      = "2025-06-09"
	DefaultScheme       = "https"
	DefaultHTTPTimeoutS = 30
)

// Config holds everything needed to reach one VikingDB deployment. It is
// passed to NewClient explicitly, never read from package globals, so
// clients for different regions or environments can coexist in one
// process.
type Config struct {
	// ControlPlaneHost is the management API host, e.g.
	// "vikingdb.ap-southeast-1.byteplusapi.com". Required for
	// collection/index/task operations.
	ControlPlaneHost string

	// DataPlaneHost is the record API host, e.g.
	// "api-vikingdb.vikingdb.ap-southeast-1.bytepluses.com". Required
	// for upsert/fetch/search operations.
	DataPlaneHost string

	// Region is the signing region, e.g. "ap-southeast-1".
	Region string

	// Service is the signing service code. Default: "vikingdb".
	Service string

	// Version is the control-plane API version carried in the Version
	// query parameter. Default: "2025-06-09".
	Version string

	// Scheme is the URL scheme. Default: "https". Overridable for
	// test servers.
	Scheme string

	// HTTPTimeoutS is the HTTP timeout in seconds. Default: 30.
	HTTPTimeoutS int
}

// NewConfig reads the configuration from environment variables:
//
//	VIKINGDB_CONTROL_PLANE_HOST
//	VIKINGDB_DATA_PLANE_HOST
//	VIKINGDB_REGION
//	VIKINGDB_API_VERSION          (optional)
//	VIKINGDB_HTTP_TIMEOUT_SECONDS (optional)
func NewConfig() *Config {
	timeout := DefaultHTTPTimeoutS
	if v := os.Getenv("VIKINGDB_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	return &Config{
		ControlPlaneHost: os.Getenv("VIKINGDB_CONTROL_PLANE_HOST"),
		DataPlaneHost:    os.Getenv("VIKINGDB_DATA_PLANE_HOST"),
		Region:           os.Getenv("VIKINGDB_REGION"),
		Version:          os.Getenv("VIKINGDB_API_VERSION"),
		HTTPTimeoutS:     timeout,
	}
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("vikingdb: missing VIKINGDB_REGION")
	}
	if c.ControlPlaneHost == "" && c.DataPlaneHost == "" {
		return fmt.Errorf("vikingdb: at least one of VIKINGDB_CONTROL_PLANE_HOST and VIKINGDB_DATA_PLANE_HOST must be set")
	}
	if c.Service == "" {
		c.Service = DefaultService
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Scheme == "" {
		c.Scheme = DefaultScheme
	}
	if c.HTTPTimeoutS <= 0 {
		c.HTTPTimeoutS = DefaultHTTPTimeoutS
	}
	return nil
}
