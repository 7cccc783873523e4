package hub

import "errors"

var (
	// ErrCapacityExceeded is returned by registration when the global or
	// per-pattern listener ceiling has been reached.
	ErrCapacityExceeded = errors.New("hub: listener capacity exceeded")

	// ErrInvalidArgument is returned when a ceiling setter receives a
	// non-positive limit or a registration receives an empty pattern.
	ErrInvalidArgument = errors.New("hub: invalid argument")

	// ErrNotConstructed is the panic value when a zero-value Hub is used.
	// Construct hubs with New.
	ErrNotConstructed = errors.New("hub: hub not constructed; use New")
)
