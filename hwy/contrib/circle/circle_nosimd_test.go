//go:build !amd64 || !goexperiment.simd

package circle

func simdKernels() []Kernel {
	return nil
}
