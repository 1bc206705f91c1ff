package circle

import (
	"fmt"
	"math/bits"
)

// ClassifyBatch_F64x2 counts hits among two points. It is the portable
// equivalent of a 128-bit compare, movemask and popcount.
func ClassifyBatch_F64x2(x, y *[2]float64) int {
	mask := b2u(IsInside(x[0], y[0])) |
		b2u(IsInside(x[1], y[1]))<<1
	return bits.OnesCount64(mask)
}

// ClassifyBatch_F64x4 counts hits among four points. It is the portable
// equivalent of a 256-bit compare, movemask and popcount.
func ClassifyBatch_F64x4(x, y *[4]float64) int {
	mask := b2u(IsInside(x[0], y[0])) |
		b2u(IsInside(x[1], y[1]))<<1 |
		b2u(IsInside(x[2], y[2]))<<2 |
		b2u(IsInside(x[3], y[3]))<<3
	return bits.OnesCount64(mask)
}

// ClassifyBatch_F64xN counts hits among the first n points, n <= 64.
func ClassifyBatch_F64xN(xs, ys []float64, n int) int {
	xs, ys = xs[:n], ys[:n]
	var mask uint64
	for i := range xs {
		mask |= b2u(IsInside(xs[i], ys[i])) << i
	}
	return bits.OnesCount64(mask)
}

type f64x2Kernel struct{}

func (f64x2Kernel) Name() string { return "f64x2" }
func (f64x2Kernel) Lanes() int   { return 2 }

func (f64x2Kernel) ClassifyBatch(xs, ys []float64) int {
	return ClassifyBatch_F64x2((*[2]float64)(xs), (*[2]float64)(ys))
}

type f64x4Kernel struct{}

func (f64x4Kernel) Name() string { return "f64x4" }
func (f64x4Kernel) Lanes() int   { return 4 }

func (f64x4Kernel) ClassifyBatch(xs, ys []float64) int {
	return ClassifyBatch_F64x4((*[4]float64)(xs), (*[4]float64)(ys))
}

type f64xNKernel struct {
	lanes int
}

func (k f64xNKernel) Name() string { return fmt.Sprintf("f64x%d", k.lanes) }
func (k f64xNKernel) Lanes() int   { return k.lanes }

func (k f64xNKernel) ClassifyBatch(xs, ys []float64) int {
	return ClassifyBatch_F64xN(xs, ys, k.lanes)
}

// b2u and b2i compile to SETcc/CSET, not a branch.
func b2u(b bool) uint64 {
	var u uint64
	if b {
		u = 1
	}
	return u
}

func b2i(b bool) int {
	var i int
	if b {
		i = 1
	}
	return i
}
