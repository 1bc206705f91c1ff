//go:build amd64 && goexperiment.simd

package circle

import "github.com/ajroetker/hwy-montecarlo/hwy"

// simdKernels lists the archsimd kernels usable on this CPU.
func simdKernels() []Kernel {
	var ks []Kernel
	if hwy.CurrentLevel() >= hwy.DispatchAVX2 {
		ks = append(ks, avx2Kernel{})
	}
	if hwy.CurrentLevel() >= hwy.DispatchAVX512 {
		ks = append(ks, avx512Kernel{})
	}
	return ks
}
