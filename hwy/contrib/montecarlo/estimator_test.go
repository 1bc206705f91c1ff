package montecarlo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/arena"
	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/circle"
)

func newTestEstimator(t *testing.T, opts ...Option) *Estimator {
	t.Helper()
	e := NewEstimator(opts...)
	t.Cleanup(func() {
		assert.NoError(t, e.Close())
	})
	return e
}

func TestEstimateConverges(t *testing.T) {
	const trials = 1_000_000
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			e := newTestEstimator(t, WithSeed(2024))
			r, err := e.Run(v, trials, 4)
			require.NoError(t, err)
			assert.EqualValues(t, trials, r.Trials)
			assert.Zero(t, r.Dropped())
			assert.InDelta(t, math.Pi, r.Pi(), 0.01)
		})
	}
}

func TestRunPartitioning(t *testing.T) {
	tests := []struct {
		name       string
		variant    Variant
		partition  Partition
		wantTrials int64
		wantShares []int64
	}{
		{"truncate", PoolBacked, PartitionTruncate, 8, []int64{2, 2, 2, 2}},
		{"spread", PoolBacked, PartitionSpread, 10, []int64{3, 3, 2, 2}},
		{"vectorized truncate", PoolBackedVectorized, PartitionTruncate, 8, []int64{2, 2, 2, 2}},
		{"sequential ignores workers", Sequential, PartitionTruncate, 10, []int64{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEstimator(t, WithPartition(tt.partition))
			r, err := e.Run(tt.variant, 10, 4)
			require.NoError(t, err)

			assert.EqualValues(t, 10, r.Requested)
			assert.Equal(t, tt.wantTrials, r.Trials)
			assert.Equal(t, 10-tt.wantTrials, r.Dropped())
			require.Len(t, r.Workers, len(tt.wantShares))
			for i, w := range r.Workers {
				assert.Equal(t, i, w.Worker)
				assert.Equal(t, tt.wantShares[i], w.Trials)
				assert.NoError(t, w.Err)
			}
		})
	}
}

func TestRunMoreWorkersThanTrials(t *testing.T) {
	e := newTestEstimator(t)
	r, err := e.Run(HeapBacked, 3, 8)
	require.NoError(t, err)
	assert.Zero(t, r.Trials)
	assert.Zero(t, r.Hits)
	assert.Zero(t, r.Pi())
	assert.EqualValues(t, 3, r.Dropped())
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		trials    int64
		workers   int64
		wantField string
	}{
		{"zero trials", 0, 4, "totalTrials"},
		{"negative trials", -5, 4, "totalTrials"},
		{"zero workers", 100, 0, "workerCount"},
		{"negative workers", 100, -1, "workerCount"},
		{"too many workers", 10, MaxWorkers + 1, "workerCount"},
		{"absurd worker count", 10, 1 << 40, "workerCount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEstimator(t)
			_, err := e.Run(PoolBacked, tt.trials, tt.workers)
			require.ErrorIs(t, err, ErrInvalidConfig)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantField, ce.Field)
			assert.Empty(t, e.Workers(), "no worker may start on invalid input")
		})
	}

	_, err := Estimate(Variant(-1), 100, 4)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestRunMaxWorkers(t *testing.T) {
	e := newTestEstimator(t)
	r, err := e.Run(HeapBacked, MaxWorkers, MaxWorkers)
	require.NoError(t, err)
	assert.Len(t, r.Workers, MaxWorkers)
	assert.EqualValues(t, MaxWorkers, r.Trials)

	_, err = e.Run(HeapBacked, MaxWorkers, MaxWorkers+1)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.EqualValues(t, MaxWorkers, ce.Max)
	assert.Contains(t, ce.Error(), "must be in [1, 4096]")
	assert.Len(t, e.Workers(), MaxWorkers, "a rejected run must not grow the worker set")
}

func TestEstimateDeterministicSeed(t *testing.T) {
	for _, v := range Variants() {
		a, err := Estimate(v, 100_003, 3, WithSeed(7))
		require.NoError(t, err)
		b, err := Estimate(v, 100_003, 3, WithSeed(7))
		require.NoError(t, err)
		assert.Equal(t, a, b, "%s", v)
	}
}

// Threaded variants with the same seed and shares give worker i the same
// stream, so their per-worker hits must match.
func TestThreadedVariantsAgree(t *testing.T) {
	run := func(v Variant) []int64 {
		e := newTestEstimator(t, WithSeed(11), WithKernel(mustKernel(t, 4)))
		r, err := e.Run(v, 40_000, 4)
		require.NoError(t, err)
		hits := make([]int64, len(r.Workers))
		for i, w := range r.Workers {
			hits[i] = w.Hits
		}
		return hits
	}
	want := run(HeapBacked)
	assert.Equal(t, want, run(PoolBacked))
	assert.Equal(t, want, run(PoolBackedVectorized))
}

func TestRunWorkerFailure(t *testing.T) {
	e := newTestEstimator(t, WithSeed(3), WithKernel(mustKernel(t, 4)))
	e.grow(4)
	// Room for the counter but not the lane buffers.
	e.workers[2].arenaSize = 8

	r, err := e.Run(PoolBackedVectorized, 4000, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, arena.ErrOutOfSpace)

	var re *RunError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 4, re.Workers)
	require.Len(t, re.Failed, 1)
	assert.Equal(t, 2, re.Failed[0].Worker)
	assert.EqualValues(t, 1000, re.Failed[0].Trials)

	var we *WorkerError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, 2, we.Worker)

	// The other three workers still count.
	assert.EqualValues(t, 3000, r.Trials)
	assert.EqualValues(t, 1000, r.Dropped())
	assert.Positive(t, r.Hits)
	assert.LessOrEqual(t, r.Hits, r.Trials)
	assert.Error(t, r.Workers[2].Err)
	assert.Zero(t, r.Workers[2].Hits)
}

func TestRunAllWorkersFail(t *testing.T) {
	e := newTestEstimator(t, WithArenaSize(4))
	r, err := e.Run(PoolBacked, 100, 2)
	var re *RunError
	require.ErrorAs(t, err, &re)
	assert.Len(t, re.Failed, 2)
	assert.Zero(t, r.Trials)
	assert.Zero(t, r.Pi())
}

func TestEstimatorReusesArenas(t *testing.T) {
	e := newTestEstimator(t)
	_, err := e.Run(PoolBacked, 1000, 3)
	require.NoError(t, err)

	arenas := make([]*arena.Arena, 0, 3)
	for _, w := range e.Workers() {
		require.NotNil(t, w.Arena())
		arenas = append(arenas, w.Arena())
	}

	_, err = e.Run(PoolBackedVectorized, 1000, 3)
	require.NoError(t, err)
	for i, w := range e.Workers() {
		assert.Same(t, arenas[i], w.Arena(), "worker %d", i)
	}

	require.NoError(t, e.Close())
	for _, a := range arenas {
		assert.True(t, a.Released())
	}

	// Closed estimators recreate arenas on the next run.
	_, err = e.Run(PoolBacked, 1000, 3)
	require.NoError(t, err)
}

func TestRunGrowsWorkers(t *testing.T) {
	e := newTestEstimator(t)
	_, err := e.Run(HeapBacked, 100, 2)
	require.NoError(t, err)
	assert.Len(t, e.Workers(), 2)

	r, err := e.Run(HeapBacked, 100, 5)
	require.NoError(t, err)
	assert.Len(t, e.Workers(), 5)
	assert.Len(t, r.Workers, 5)

	r, err = e.Run(HeapBacked, 100, 3)
	require.NoError(t, err)
	assert.Len(t, e.Workers(), 5, "contexts are kept")
	assert.Len(t, r.Workers, 3)
}

func TestRunKernelReported(t *testing.T) {
	k := mustKernel(t, 2)
	e := newTestEstimator(t, WithKernel(k))

	r, err := e.Run(PoolBackedVectorized, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, k.Name(), r.Kernel)
	assert.Equal(t, 2, r.Lanes)

	r, err = e.Run(PoolBacked, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, circle.Scalar.Name(), r.Kernel)
	assert.Equal(t, 1, r.Lanes)
}

func TestWithKernelNil(t *testing.T) {
	e := newTestEstimator(t, WithKernel(nil))
	r, err := e.Run(PoolBackedVectorized, 100, 2)
	require.NoError(t, err)
	assert.Equal(t, circle.Default().Name(), r.Kernel)
}

func TestRunPinned(t *testing.T) {
	e := newTestEstimator(t, WithPinning(true), WithSeed(5))
	r, err := e.Run(PoolBacked, 10_000, 2)
	require.NoError(t, err)
	for _, w := range r.Workers {
		assert.LessOrEqual(t, w.Hits, w.Trials)
		t.Logf("worker %d pinned=%v", w.Worker, w.Pinned)
	}

	// Sequential runs on the caller and is never pinned.
	r, err = e.Run(Sequential, 100, 2)
	require.NoError(t, err)
	assert.False(t, r.Workers[0].Pinned)
}

func BenchmarkEstimate(b *testing.B) {
	const trials = 1 << 20
	for _, v := range Variants() {
		b.Run(v.String(), func(b *testing.B) {
			e := NewEstimator()
			defer e.Close()
			for b.Loop() {
				if _, err := e.Run(v, trials, 4); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(trials)*float64(b.N)/b.Elapsed().Seconds(), "trials/s")
		})
	}
}
