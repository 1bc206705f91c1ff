// Package arena implements a fixed-capacity bump allocator.
//
// An Arena owns one contiguous buffer whose base address is aligned to
// BufferAlign (64 bytes, one cache line and one AVX-512 register). Every
// allocation is a single alignment round-up, bounds check and offset bump.
// Individual allocations are never freed; Reset reclaims everything at once
// in O(1) by rewinding the offset to zero.
//
// # Usage
//
//	a, err := arena.New(64 * 1024)
//	if err != nil {
//	    return err
//	}
//	defer a.Release()
//
//	for epoch := range epochs {
//	    a.Reset()
//	    hits, err := arena.Alloc[int64](a)
//	    if err != nil {
//	        return err // errors.Is(err, arena.ErrOutOfSpace)
//	    }
//	    ...
//	}
//
// # Alignment
//
// Padding is computed against the absolute address before the offset moves,
// so consumed space always includes the padding and two allocations with
// different alignments can never overlap.
//
// # Memory
//
// On Linux the buffer is an anonymous private mapping obtained with
// golang.org/x/sys/unix and unmapped by Release. On other platforms it is a
// Go byte slice re-sliced to the first aligned address. In both cases the
// garbage collector does not scan the buffer as pointer memory, so values
// placed in an arena must not contain Go pointers.
//
// # Thread Safety
//
// An Arena is not goroutine-safe. Each worker owns its own instance.
package arena
