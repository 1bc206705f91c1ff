//go:build amd64 && goexperiment.simd

package circle

import (
	"simd/archsimd"
)

// ClassifyBatch_AVX512_F64x8 counts hits among eight points held in an
// AVX-512 register.
func ClassifyBatch_AVX512_F64x8(x, y archsimd.Float64x8) int {
	one := archsimd.BroadcastFloat64x8(1.0)
	zero := archsimd.BroadcastFloat64x8(0.0)

	dist2 := x.Mul(x).Add(y.Mul(y))
	hits := zero.Merge(one, one.Less(dist2))

	var lanes [8]float64
	hits.StoreSlice(lanes[:])
	return int(lanes[0] + lanes[1] + lanes[2] + lanes[3] +
		lanes[4] + lanes[5] + lanes[6] + lanes[7])
}

type avx512Kernel struct{}

func (avx512Kernel) Name() string { return "avx512-f64x8" }
func (avx512Kernel) Lanes() int   { return 8 }

func (avx512Kernel) ClassifyBatch(xs, ys []float64) int {
	x := archsimd.LoadFloat64x8Slice(xs)
	y := archsimd.LoadFloat64x8Slice(ys)
	return ClassifyBatch_AVX512_F64x8(x, y)
}
