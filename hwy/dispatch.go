// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hwy detects the SIMD capability of the running CPU once at startup
// and exposes it as a dispatch level and a vector width. Kernels in
// hwy/contrib consult it to pick their batch width.
package hwy

import "os"

// DispatchLevel identifies the instruction set selected for this process.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota
	DispatchSSE2
	DispatchNEON
	DispatchAVX2
	DispatchAVX512
)

// String returns the lowercase name of the level.
func (l DispatchLevel) String() string {
	switch l {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchNEON:
		return "neon"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	}
	return "unknown"
}

// Set by the per-architecture init() in dispatch_*.go.
var (
	currentLevel DispatchLevel
	currentWidth int
	currentName  string
)

// CurrentLevel returns the dispatch level detected at startup.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector register width in bytes.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a short human-readable name for the dispatch target.
func CurrentName() string {
	return currentName
}

// MaxLanes64 returns the number of float64 lanes in one vector register.
// This is the batch width used by the vectorized kernels; it is 1 in
// scalar mode.
func MaxLanes64() int {
	if currentLevel == DispatchScalar {
		return 1
	}
	return currentWidth / 8
}

// NoSimdEnv reports whether HWY_NO_SIMD asks for scalar mode.
// Any non-empty value other than "0" or "false" disables SIMD.
func NoSimdEnv() bool {
	switch os.Getenv("HWY_NO_SIMD") {
	case "", "0", "false":
		return false
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 8
	currentName = "scalar"
}
