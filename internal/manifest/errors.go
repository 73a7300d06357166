package manifest

import "errors"

var (
	// ErrUnknownPlaceholder is returned when a template references a name
	// that has no resolved value.
	ErrUnknownPlaceholder = errors.New("unknown manifest placeholder")
	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")
)
