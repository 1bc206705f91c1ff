package arena

import (
	"fmt"
	"unsafe"
)

// BufferAlign is the alignment of every arena's base address.
const BufferAlign = 64

// DefaultSize is the per-worker arena capacity used by the pool-backed
// estimators (64 KiB).
const DefaultSize = 64 * 1024

// Arena is a fixed-capacity bump allocator. The zero value is not usable;
// create arenas with New.
type Arena struct {
	buf     []byte
	base    uintptr
	offset  uintptr
	release func() error

	highWater uintptr
	allocs    uint64
	resets    uint64
	failures  uint64
}

// New creates an arena backed by a BufferAlign-aligned buffer of exactly
// capacity bytes.
func New(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	buf, release, err := mapBuffer(capacity)
	if err != nil {
		return nil, err
	}
	return &Arena{
		buf:     buf,
		base:    uintptr(unsafe.Pointer(unsafe.SliceData(buf))),
		release: release,
	}, nil
}

// Allocate reserves size bytes aligned to align and returns their address.
//
// The returned range [p, p+size) lies inside the buffer and does not overlap
// any other allocation made since the last Reset. When the request does not
// fit, Allocate returns an *OutOfSpaceError and leaves the arena unchanged.
// A zero size returns a nil pointer and no error.
func (a *Arena) Allocate(size, align uintptr) (unsafe.Pointer, error) {
	if a.buf == nil {
		return nil, ErrReleased
	}
	if align == 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlignment, align)
	}
	if size == 0 {
		return nil, nil
	}

	// Pad first, then bound-check the padded start, then bump.
	capacity := uintptr(len(a.buf))
	start := alignUp(a.base+a.offset, align) - a.base
	if start > capacity || size > capacity-start {
		a.failures++
		return nil, &OutOfSpaceError{
			Requested: size,
			Align:     align,
			Offset:    a.offset,
			Start:     start,
			Capacity:  capacity,
		}
	}

	a.offset = start + size
	if a.offset > a.highWater {
		a.highWater = a.offset
	}
	a.allocs++
	return unsafe.Pointer(&a.buf[start]), nil
}

// Reset rewinds the arena to empty in O(1). Pointers returned before the
// reset must no longer be used. Nothing is zeroed and no destructors run.
func (a *Arena) Reset() {
	a.offset = 0
	a.resets++
}

// Release returns the buffer to the system. It is safe to call more than
// once; only the first call frees anything.
func (a *Arena) Release() error {
	if a.buf == nil {
		return nil
	}
	err := a.release()
	a.buf = nil
	a.base = 0
	a.offset = 0
	a.release = nil
	return err
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.buf == nil
}

// Capacity returns the buffer size in bytes, or 0 after Release.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Offset returns the number of bytes consumed since the last Reset,
// alignment padding included.
func (a *Arena) Offset() int {
	return int(a.offset)
}

// Available returns the bytes left before the arena is exhausted.
func (a *Arena) Available() int {
	return len(a.buf) - int(a.offset)
}

// alignUp rounds p up to the next multiple of align (a power of two).
func alignUp(p, align uintptr) uintptr {
	return (p + align - 1) &^ (align - 1)
}
