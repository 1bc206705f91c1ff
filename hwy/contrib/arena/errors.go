package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfSpace is returned when a request does not fit in the
	// remaining capacity. The concrete error is an *OutOfSpaceError.
	ErrOutOfSpace = errors.New("arena: out of space")

	// ErrInvalidAlignment is returned for a zero or non power-of-two alignment.
	ErrInvalidAlignment = errors.New("arena: alignment must be a power of two")

	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("arena: capacity must be positive")

	// ErrReleased is returned by Allocate after Release.
	ErrReleased = errors.New("arena: use after release")
)

// OutOfSpaceError describes a failed allocation. The arena offset is left
// exactly as it was before the call.
type OutOfSpaceError struct {
	Requested uintptr // bytes asked for
	Align     uintptr // alignment asked for
	Offset    uintptr // offset at the time of the request
	Start     uintptr // Offset rounded up to Align
	Capacity  uintptr // total buffer capacity
}

func (e *OutOfSpaceError) Error() string {
	return fmt.Sprintf("arena: out of space: need %d bytes (align %d) at offset %d, capacity %d",
		e.Requested, e.Align, e.Start, e.Capacity)
}

// Is makes errors.Is(err, ErrOutOfSpace) hold.
func (e *OutOfSpaceError) Is(target error) bool {
	return target == ErrOutOfSpace
}

// Needed returns the capacity the arena would have needed for the request
// to succeed, alignment padding included.
func (e *OutOfSpaceError) Needed() uintptr {
	return e.Start + e.Requested
}
