package resolver

import "errors"

var (
	// ErrInvalidRule is returned when a rule definition cannot be used.
	ErrInvalidRule = errors.New("invalid placeholder rule")
)
