package arena

import (
	"fmt"
	"math"
	"unsafe"
)

// Alloc returns a zeroed *T placed in the arena at T's natural alignment.
// T must not contain Go pointers.
func Alloc[T any](a *Arena) (*T, error) {
	var zero T
	size := unsafe.Sizeof(zero)
	p, err := a.Allocate(size, unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return new(T), nil
	}
	// Bytes may be left over from before the last Reset.
	clear(unsafe.Slice((*byte)(p), size))
	return (*T)(p), nil
}

// AllocSlice returns a zeroed slice of n elements of T placed in the arena.
// It returns nil for n <= 0. T must not contain Go pointers.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	elemSize := unsafe.Sizeof(zero)
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if uintptr(n) > math.MaxInt/elemSize {
		return nil, fmt.Errorf("arena: slice of %d elements of %d bytes overflows", n, elemSize)
	}
	total := elemSize * uintptr(n)
	p, err := a.Allocate(total, unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	clear(unsafe.Slice((*byte)(p), total))
	return unsafe.Slice((*T)(p), n), nil
}
