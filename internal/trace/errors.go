package trace

import "errors"

// Errors returned when reading traces.
var (
	// ErrInvalidJSON indicates a line is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON object")

	// ErrMissingTime indicates a record has no time offset.
	ErrMissingTime = errors.New("missing time offset")

	// ErrTimeOrder indicates a record is older than its predecessor.
	ErrTimeOrder = errors.New("time offset goes backwards")
)
