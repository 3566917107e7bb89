package sim

import "errors"

// Error taxonomy for the simulation kernel. Callers inspect these with errors.Is;
// the concrete errors wrap them with the offending field or value.
var (
	// ErrInvalidParameter reports a non-positive rate, horizon, or capacity
	// supplied by the caller. Returned before any simulation state is created.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDelay reports an attempt to schedule an event in the past.
	// It signals a bug (e.g. a corrupted variate) and aborts the run.
	ErrInvalidDelay = errors.New("invalid delay")

	// ErrInvalidCapacity reports a Resource constructed with capacity <= 0.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrNotHolder reports a Release by a process that does not hold a slot.
	ErrNotHolder = errors.New("process does not hold a resource slot")
)
