package circle

import (
	"errors"
	"fmt"

	"github.com/ajroetker/hwy-montecarlo/hwy"
)

// ErrUnsupportedLanes is returned by KernelFor for a width with no kernel.
var ErrUnsupportedLanes = errors.New("circle: unsupported lane count")

// Kernel classifies one batch of Lanes() points.
type Kernel interface {
	// Name identifies the kernel, e.g. "f64x4" or "avx2-f64x4".
	Name() string

	// Lanes is the batch width B.
	Lanes() int

	// ClassifyBatch returns how many of the first Lanes() points
	// (xs[i], ys[i]) are inside the unit circle. Both slices must hold at
	// least Lanes() values.
	ClassifyBatch(xs, ys []float64) int
}

// IsInside reports whether (x, y) lies inside or on the unit circle.
//
// Example:
//
//	IsInside(0.5, 0.5) // true
//	IsInside(1, 1)     // false
func IsInside(x, y float64) bool {
	// Explicit conversions round each product, forbidding FMA contraction.
	return float64(x*x)+float64(y*y) <= 1.0
}

// Count returns how many points (xs[i], ys[i]) are inside the unit circle.
// Full batches go through k; the n mod k.Lanes() tail goes through IsInside.
// If the slices have different lengths, the minimum length is used.
func Count(k Kernel, xs, ys []float64) int {
	n := min(len(xs), len(ys))
	lanes := k.Lanes()

	hits := 0
	for i := 0; i+lanes <= n; i += lanes {
		hits += k.ClassifyBatch(xs[i:i+lanes], ys[i:i+lanes])
	}

	// Handle tail elements with scalar code
	for i := (n / lanes) * lanes; i < n; i++ {
		hits += b2i(IsInside(xs[i], ys[i]))
	}
	return hits
}

// Scalar is the width-1 kernel. It is also the software fallback.
var Scalar Kernel = scalarKernel{}

// defaultKernel follows the detected vector width. Archsimd builds replace
// it in init().
var defaultKernel = mustKernelFor(hwy.MaxLanes64())

// Default returns the kernel selected for this CPU.
func Default() Kernel {
	return defaultKernel
}

// KernelFor returns the portable kernel processing lanes points per batch.
// Supported widths are 1, 2, 4 and 8.
func KernelFor(lanes int) (Kernel, error) {
	switch lanes {
	case 1:
		return Scalar, nil
	case 2:
		return f64x2Kernel{}, nil
	case 4:
		return f64x4Kernel{}, nil
	case 8:
		return f64xNKernel{lanes: 8}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedLanes, lanes)
}

func mustKernelFor(lanes int) Kernel {
	k, err := KernelFor(lanes)
	if err != nil {
		return Scalar
	}
	return k
}

type scalarKernel struct{}

func (scalarKernel) Name() string { return "scalar" }
func (scalarKernel) Lanes() int   { return 1 }

func (scalarKernel) ClassifyBatch(xs, ys []float64) int {
	return b2i(IsInside(xs[0], ys[0]))
}
