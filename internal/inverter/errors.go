package inverter

import "errors"

// Domain-specific errors for device fetch operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnreachable is returned when the device cannot be reached or does
	// not serve live data: connection refused, timeout, or a non-2xx status.
	ErrUnreachable = errors.New("inverter: device unreachable")

	// ErrMalformedResponse is returned when the device responds but the
	// payload cannot be parsed into the expected inverter record structure.
	ErrMalformedResponse = errors.New("inverter: malformed response")
)
