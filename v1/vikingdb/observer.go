package vikingdb

import (
	"time"

	"github.com/skylarkhq/vikingdb-go/v1/observability"
)

// observeOperation notifies the observer about an operation if one is
// configured. This is used internally to track API calls for metrics and
// tracing.
//
// Notes:
//   - resource: the target host
//   - subResource: the request path (data plane) or "/" (control plane)
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "vikingdb",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
