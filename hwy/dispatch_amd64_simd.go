//go:build amd64 && goexperiment.simd

package hwy

import "simd/archsimd"

// With GOEXPERIMENT=simd the archsimd package answers the feature query
// itself, and the level chosen here also decides which archsimd circle
// kernel becomes the default.

func init() {
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	switch {
	case archsimd.X86.AVX512():
		// Float64x8: eight darts per batch.
		currentLevel = DispatchAVX512
		currentWidth = 64
		currentName = "avx512"
	case archsimd.X86.AVX2():
		// Float64x4: four darts per batch.
		currentLevel = DispatchAVX2
		currentWidth = 32
		currentName = "avx2"
	default:
		// No archsimd kernel; the portable f64x2 kernel runs instead.
		currentLevel = DispatchSSE2
		currentWidth = 16
		currentName = "sse2"
	}
}
