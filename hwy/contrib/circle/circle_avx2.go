//go:build amd64 && goexperiment.simd

package circle

import (
	"simd/archsimd"
)

// ClassifyBatch_AVX2_F64x4 counts hits among four points held in AVX2
// registers. Lanes where 1 < x*x+y*y are misses; the rest select 1.0 and
// are summed.
func ClassifyBatch_AVX2_F64x4(x, y archsimd.Float64x4) int {
	one := archsimd.BroadcastFloat64x4(1.0)
	zero := archsimd.BroadcastFloat64x4(0.0)

	dist2 := x.Mul(x).Add(y.Mul(y))
	hits := zero.Merge(one, one.Less(dist2))

	var lanes [4]float64
	hits.StoreSlice(lanes[:])
	return int(lanes[0] + lanes[1] + lanes[2] + lanes[3])
}

type avx2Kernel struct{}

func (avx2Kernel) Name() string { return "avx2-f64x4" }
func (avx2Kernel) Lanes() int   { return 4 }

func (avx2Kernel) ClassifyBatch(xs, ys []float64) int {
	x := archsimd.LoadFloat64x4Slice(xs)
	y := archsimd.LoadFloat64x4Slice(ys)
	return ClassifyBatch_AVX2_F64x4(x, y)
}
