package montecarlo

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Variant selects the memory and vectorization strategy of a run.
type Variant int

const (
	// Sequential runs all trials on the calling goroutine with a stack counter.
	Sequential Variant = iota
	// HeapBacked runs W workers, each counting through a heap-allocated counter.
	HeapBacked
	// PoolBacked runs W workers, each counting through its arena.
	PoolBacked
	// PoolBackedVectorized is PoolBacked with the batch kernel.
	PoolBackedVectorized
)

// Variants lists every variant in the order the benchmark runs them.
func Variants() []Variant {
	return []Variant{Sequential, HeapBacked, PoolBacked, PoolBackedVectorized}
}

// String returns the short method name used on the command line.
func (v Variant) String() string {
	switch v {
	case Sequential:
		return "Sequential"
	case HeapBacked:
		return "Heap"
	case PoolBacked:
		return "Pool"
	case PoolBackedVectorized:
		return "SIMD"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Threaded reports whether the variant dispatches to W workers.
func (v Variant) Threaded() bool {
	return v != Sequential
}

func (v Variant) valid() bool {
	return v >= Sequential && v <= PoolBackedVectorized
}

var variantNames = map[string]Variant{
	"sequential":             Sequential,
	"heap":                   HeapBacked,
	"heap-backed":            HeapBacked,
	"pool":                   PoolBacked,
	"pool-backed":            PoolBacked,
	"simd":                   PoolBackedVectorized,
	"vectorized":             PoolBackedVectorized,
	"pool-backed-vectorized": PoolBackedVectorized,
}

// ParseVariant maps a method name to a Variant. Matching ignores case, so
// "SIMD", "simd" and "Pool-Backed-Vectorized" all select
// PoolBackedVectorized.
func ParseVariant(name string) (Variant, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	if v, ok := variantNames[key]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}
