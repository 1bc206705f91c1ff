//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64/arm64 architectures run the scalar kernel.
	// wasm SIMD128 and the riscv64 vector extension are not wired up yet.
	setScalarMode()
}
