package montecarlo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name string
		want Variant
	}{
		{"Sequential", Sequential},
		{"sequential", Sequential},
		{"Heap", HeapBacked},
		{"heap-backed", HeapBacked},
		{"Pool", PoolBacked},
		{"POOL-BACKED", PoolBacked},
		{"SIMD", PoolBackedVectorized},
		{"simd", PoolBackedVectorized},
		{"Pool-Backed-Vectorized", PoolBackedVectorized},
		{"  vectorized ", PoolBackedVectorized},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.name)
		require.NoError(t, err, "ParseVariant(%q)", tt.name)
		assert.Equal(t, tt.want, got, "ParseVariant(%q)", tt.name)
	}

	for _, bad := range []string{"", "All", "gpu", "heap backed"} {
		_, err := ParseVariant(bad)
		assert.ErrorIs(t, err, ErrUnknownVariant, "ParseVariant(%q)", bad)
	}
}

func TestVariantString(t *testing.T) {
	names := make([]string, 0, 4)
	for _, v := range Variants() {
		names = append(names, v.String())
		back, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
	assert.Equal(t, []string{"Sequential", "Heap", "Pool", "SIMD"}, names)
	assert.Equal(t, "Variant(9)", Variant(9).String())
}

func TestVariantThreaded(t *testing.T) {
	assert.False(t, Sequential.Threaded())
	assert.True(t, HeapBacked.Threaded())
	assert.True(t, PoolBacked.Threaded())
	assert.True(t, PoolBackedVectorized.Threaded())
}
