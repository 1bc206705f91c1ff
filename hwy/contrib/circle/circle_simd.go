//go:build amd64 && goexperiment.simd

package circle

import "github.com/ajroetker/hwy-montecarlo/hwy"

func init() {
	switch {
	case hwy.CurrentLevel() >= hwy.DispatchAVX512:
		defaultKernel = avx512Kernel{}
	case hwy.CurrentLevel() >= hwy.DispatchAVX2:
		defaultKernel = avx2Kernel{}
	}
}
