package input

import "errors"

var (
	// ErrUnknownSource is returned for a source selector outside the known set.
	ErrUnknownSource = errors.New("unknown input source")

	// ErrInvalidForm is returned when the request body cannot be parsed.
	ErrInvalidForm = errors.New("invalid form data")
)
