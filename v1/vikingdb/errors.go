package vikingdb

import (
	"errors"
	"fmt"
)

// Common client errors.
var (
	// ErrNotConfirmed is returned when a destructive operation is
	// attempted without Confirmed set. No request is sent.
	ErrNotConfirmed = errors.New("vikingdb: destructive operation not confirmed")

	// ErrControlPlaneNotConfigured is returned when a control-plane
	// operation is attempted without a control-plane host.
	ErrControlPlaneNotConfigured = errors.New("vikingdb: control-plane host not configured")

	// ErrDataPlaneNotConfigured is returned when a data-plane operation
	// is attempted without a data-plane host.
	ErrDataPlaneNotConfigured = errors.New("vikingdb: data-plane host not configured")

	// ErrTooManyIDs is returned when a delete exceeds the per-request
	// ID limit.
	ErrTooManyIDs = errors.New("vikingdb: too many ids in one request (max 100)")
)

// APIError is a remote rejection: a non-2xx HTTP status, or a response
// envelope carrying an error code. The raw response body is preserved so
// callers can distinguish permission errors from malformed requests.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Code is the service error code from the response envelope, when
	// present (e.g. "InvalidParameter", "AccessDenied").
	Code string

	// Message is the service error message, when present.
	Message string

	// RequestID identifies the failed request on the service side.
	RequestID string

	// RawBody is the unparsed response body.
	RawBody []byte
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("vikingdb: api error: status=%d code=%s message=%s request_id=%s", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("vikingdb: api error: status=%d body=%s", e.StatusCode, string(e.RawBody))
}

// AsAPIError unwraps err into an *APIError if there is one in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
