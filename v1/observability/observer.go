package observability

import "time"

// OperationContext carries everything an Observer needs to account for a
// single client operation. It is passed by value and never retained by
// the emitting package.
type OperationContext struct {
	// Component is the emitting package, e.g. "vikingdb" or "transfer".
	Component string

	// Operation is the logical operation name, e.g. "CreateCollection"
	// or "vector_search".
	Operation string

	// Resource is the primary resource the operation acted on
	// (collection name, bucket, ...).
	Resource string

	// SubResource adds detail below Resource (index name, object key, ...).
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is non-nil when the operation failed.
	Error error

	// Size is an operation-defined byte or item count (payload bytes,
	// records upserted, ...). Zero when not applicable.
	Size int64

	// Metadata holds optional extra dimensions (page number, action, ...).
	Metadata map[string]interface{}
}

// Observer receives operation notifications from client packages.
// Implementations must be safe for concurrent use; the metrics package
// provides a prometheus-backed implementation.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
