package kokkai

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates an invalid query or argument.
	ErrValidation = errors.New("validation error")

	// ErrTransport indicates an HTTP-level failure talking to the records
	// API: a non-2xx status, a timeout, or a failed round trip.
	ErrTransport = errors.New("transport error")

	// ErrShape indicates a response that does not match the expected
	// structure: missing or mistyped fields in the API payload.
	ErrShape = errors.New("unexpected response shape")

	// ErrStreamClosed indicates an operation on a closed record stream.
	ErrStreamClosed = errors.New("record stream closed")
)
