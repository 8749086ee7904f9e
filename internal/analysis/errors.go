package analysis

import "errors"

// Domain-specific errors for analysis runs.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNoSamples is returned when the sample store holds no readings.
	// An empty store is a distinct condition from a store whose fields
	// simply never varied ("No static curves found" is a valid report).
	ErrNoSamples = errors.New("analysis: sample store is empty")

	// ErrNoNumericFields is returned when readings exist but none of their
	// fields ever carried a numeric value. Informational rather than fatal:
	// there is nothing to summarise, not something broken.
	ErrNoNumericFields = errors.New("analysis: no numeric fields observed")
)
