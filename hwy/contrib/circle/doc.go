// Package circle classifies sample points against the unit circle.
//
// # Kernels
//
// The package provides a scalar test and fixed-width batch tests over
// float64 coordinates:
//   - IsInside(x, y) - single point
//   - ClassifyBatch_F64x2 / ClassifyBatch_F64x4 - 2 or 4 points, portable Go
//   - ClassifyBatch_AVX2_F64x4 / ClassifyBatch_AVX512_F64x8 - archsimd
//   - Count(k, xs, ys) - any number of points through a Kernel
//
// # Algorithm
//
// A point (x, y) is a hit when x*x + y*y <= 1. No square root is taken and
// no branch depends on the comparison:
//  1. Square and sum each lane
//  2. Compare every lane against 1.0 to build a lane mask
//  3. Popcount the mask
//  4. Classify the n mod B tail with the scalar test
//
// All kernels agree bit for bit with IsInside on finite inputs. Products are
// rounded to float64 before the add so that no path is contracted into a
// fused multiply-add.
//
// # Dispatch
//
// Default returns the kernel picked once at startup from hwy.MaxLanes64().
// Builds with GOEXPERIMENT=simd on AVX2 or AVX-512 hardware swap in the
// archsimd kernels. HWY_NO_SIMD=1 selects the scalar kernel.
package circle
