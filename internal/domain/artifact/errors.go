package artifact

import "errors"

var (
	// ErrInvalidInput indicates an invalid save request.
	ErrInvalidInput = errors.New("invalid save input")
	// ErrNoBasePath indicates no storage base path validated, including the
	// last-resort default. This is the only fatal persistence condition.
	ErrNoBasePath = errors.New("no usable storage base path")
)
