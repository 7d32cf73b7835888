package script

import "errors"

var (
	// ErrClosed is returned when using a closed Hook.
	ErrClosed = errors.New("script is closed")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("script execution timeout")

	// ErrBadReturn is returned when a hook returns something other than a
	// string or nil.
	ErrBadReturn = errors.New("hook must return a string or nil")
)
