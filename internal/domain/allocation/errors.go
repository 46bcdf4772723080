package allocation

import "errors"

var (
	// ErrStoreUnavailable indicates the counter store could not be reached
	// after the configured number of attempts.
	ErrStoreUnavailable = errors.New("counter store unavailable")
	// ErrNumberCollision indicates an allocated number was already taken.
	ErrNumberCollision = errors.New("project number collision")
	// ErrInvalidNumber indicates a string is not a parseable project number.
	ErrInvalidNumber = errors.New("invalid project number")
)
