package montecarlo

import (
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/arena"
	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/circle"
)

// WorkerContext is everything one worker owns: its index, its private
// random stream, its arena and its batch kernel. A context is never shared
// between goroutines.
type WorkerContext struct {
	index     int
	rng       *rand.Rand
	kernel    circle.Kernel
	arenaSize int

	// Created on the first pool-backed run and kept across runs.
	arena *arena.Arena

	// Holding the heap-backed counter here forces it to escape to the heap.
	heapHits *int64
}

// NewWorkerContext creates the context for worker index. If seeded is
// false the random stream is seeded from the runtime's entropy source and
// seed is ignored; otherwise the stream is derived from seed and index.
func NewWorkerContext(index int, seed uint64, seeded bool, k circle.Kernel, arenaSize int) *WorkerContext {
	var s1, s2 uint64
	if seeded {
		s1 = mix64(seed + uint64(index))
		s2 = mix64(s1)
	} else {
		s1, s2 = rand.Uint64(), rand.Uint64()
	}
	if k == nil {
		k = circle.Default()
	}
	if arenaSize <= 0 {
		arenaSize = arena.DefaultSize
	}
	return &WorkerContext{
		index:     index,
		rng:       rand.New(rand.NewPCG(s1, s2)),
		kernel:    k,
		arenaSize: arenaSize,
	}
}

// Index returns the worker index.
func (w *WorkerContext) Index() int {
	return w.index
}

// Kernel returns the batch kernel used by PoolBackedVectorized.
func (w *WorkerContext) Kernel() circle.Kernel {
	return w.kernel
}

// Arena returns the worker's arena, or nil before the first pool-backed run.
func (w *WorkerContext) Arena() *arena.Arena {
	return w.arena
}

// Run samples exactly trials points with the strategy of v and returns the
// number of hits.
func (w *WorkerContext) Run(v Variant, trials int64) (int64, error) {
	switch v {
	case Sequential:
		return w.runStack(trials), nil
	case HeapBacked:
		return w.runHeap(trials), nil
	case PoolBacked:
		return w.runPool(trials)
	case PoolBackedVectorized:
		return w.runVectorized(trials)
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
}

// Close releases the worker's arena, if any.
func (w *WorkerContext) Close() error {
	if w.arena == nil {
		return nil
	}
	err := w.arena.Release()
	w.arena = nil
	return err
}

func (w *WorkerContext) runStack(trials int64) int64 {
	var hits int64
	w.sample(&hits, trials)
	return hits
}

func (w *WorkerContext) runHeap(trials int64) int64 {
	w.heapHits = new(int64)
	w.sample(w.heapHits, trials)
	return *w.heapHits
}

func (w *WorkerContext) runPool(trials int64) (int64, error) {
	a, err := w.resetArena()
	if err != nil {
		return 0, err
	}
	hits, err := arena.Alloc[int64](a)
	if err != nil {
		return 0, fmt.Errorf("allocating hit counter: %w", err)
	}
	w.sample(hits, trials)
	return *hits, nil
}

func (w *WorkerContext) runVectorized(trials int64) (int64, error) {
	a, err := w.resetArena()
	if err != nil {
		return 0, err
	}
	hits, err := arena.Alloc[int64](a)
	if err != nil {
		return 0, fmt.Errorf("allocating hit counter: %w", err)
	}

	lanes := w.kernel.Lanes()
	xs, err := arena.AllocSlice[float64](a, lanes)
	if err != nil {
		return 0, fmt.Errorf("allocating %d x lanes: %w", lanes, err)
	}
	ys, err := arena.AllocSlice[float64](a, lanes)
	if err != nil {
		return 0, fmt.Errorf("allocating %d y lanes: %w", lanes, err)
	}

	batch := int64(lanes)
	loopEnd := trials - trials%batch
	for i := int64(0); i < loopEnd; i += batch {
		for j := range lanes {
			xs[j] = w.rng.Float64()
			ys[j] = w.rng.Float64()
		}
		*hits += int64(w.kernel.ClassifyBatch(xs, ys))
	}

	// Scalar tail for the trials mod B leftover.
	w.sample(hits, trials-loopEnd)
	return *hits, nil
}

func (w *WorkerContext) sample(hits *int64, trials int64) {
	for range trials {
		x := w.rng.Float64()
		y := w.rng.Float64()
		if circle.IsInside(x, y) {
			*hits++
		}
	}
}

// resetArena creates the arena on first use and empties it on every later
// call, so repeated runs reuse the same buffer.
func (w *WorkerContext) resetArena() (*arena.Arena, error) {
	if w.arena == nil {
		a, err := arena.New(w.arenaSize)
		if err != nil {
			return nil, err
		}
		w.arena = a
	}
	w.arena.Reset()
	return w.arena, nil
}

// mix64 is the splitmix64 finalizer. Consecutive seeds map to unrelated
// streams.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
