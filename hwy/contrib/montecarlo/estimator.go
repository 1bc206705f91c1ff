package montecarlo

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/arena"
	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/circle"
	"github.com/ajroetker/hwy-montecarlo/internal/affinity"
)

// WorkerResult is the output slot of one worker.
type WorkerResult struct {
	Worker int
	Trials int64 // trials assigned
	Hits   int64 // 0 <= Hits <= Trials
	Pinned bool  // thread was pinned to a CPU
	Err    error
}

// Result aggregates a run.
type Result struct {
	Variant   Variant
	Kernel    string
	Lanes     int
	Requested int64 // total trials asked for
	Trials    int64 // trials sampled by workers that succeeded
	Hits      int64
	Workers   []WorkerResult
}

// Pi returns 4·Hits/Trials, or 0 when nothing was sampled.
func (r Result) Pi() float64 {
	if r.Trials == 0 {
		return 0
	}
	return 4 * float64(r.Hits) / float64(r.Trials)
}

// Dropped returns the number of requested trials that were never sampled
// because of truncating partitioning or worker failure.
func (r Result) Dropped() int64 {
	return r.Requested - r.Trials
}

// MaxWorkers bounds the worker count of a run. Every worker costs a
// goroutine, a context and a result slot, so larger counts are rejected
// up front instead of exhausting memory.
const MaxWorkers = 4096

// slot pads each worker's output to its own cache line.
type slot struct {
	WorkerResult
	_ cpu.CacheLinePad
}

type options struct {
	arenaSize int
	kernel    circle.Kernel
	seed      uint64
	seeded    bool
	partition Partition
	pin       bool
}

// Option configures an Estimator.
type Option func(*options)

// WithArenaSize sets the per-worker arena capacity in bytes. The default
// is arena.DefaultSize.
func WithArenaSize(bytes int) Option {
	return func(o *options) {
		o.arenaSize = bytes
	}
}

// WithKernel overrides the batch kernel used by PoolBackedVectorized.
func WithKernel(k circle.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithSeed makes every worker's random stream a function of seed and the
// worker index, so runs are reproducible. Without it streams are seeded
// from the runtime's entropy source.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithPartition selects how the T mod W remainder is handled.
func WithPartition(p Partition) Option {
	return func(o *options) {
		o.partition = p
	}
}

// WithPinning locks each worker goroutine to its own OS thread and pins
// that thread to CPU (index mod NumCPU). Pinned threads are discarded when
// their worker exits.
func WithPinning(pin bool) Option {
	return func(o *options) {
		o.pin = pin
	}
}

// Estimator dispatches runs to a fixed set of worker contexts. Contexts,
// and the arenas they own, persist across runs and are reset at the start
// of each one. An Estimator must not be used from more than one goroutine
// at a time.
type Estimator struct {
	opts    options
	workers []*WorkerContext
}

// NewEstimator returns an Estimator configured by opts.
func NewEstimator(opts ...Option) *Estimator {
	o := options{
		arenaSize: arena.DefaultSize,
		kernel:    circle.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.kernel == nil {
		o.kernel = circle.Default()
	}
	return &Estimator{opts: o}
}

// Estimate runs variant once with a fresh Estimator and returns the
// aggregate hit count.
func Estimate(variant Variant, totalTrials, workerCount int64, opts ...Option) (int64, error) {
	e := NewEstimator(opts...)
	r, err := e.Run(variant, totalTrials, workerCount)
	if cerr := e.Close(); err == nil {
		err = cerr
	}
	return r.Hits, err
}

// Run validates the configuration, runs every worker to completion and
// sums their hits in worker order.
//
// If some workers fail, Run still returns the aggregate of the others
// together with a *RunError naming each failed worker.
func (e *Estimator) Run(variant Variant, totalTrials, workerCount int64) (Result, error) {
	if totalTrials <= 0 {
		return Result{}, &ConfigError{Field: "totalTrials", Value: totalTrials}
	}
	if workerCount <= 0 {
		return Result{}, &ConfigError{Field: "workerCount", Value: workerCount}
	}
	if workerCount > MaxWorkers {
		return Result{}, &ConfigError{Field: "workerCount", Value: workerCount, Max: MaxWorkers}
	}
	if !variant.valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownVariant, int(variant))
	}

	r := Result{
		Variant:   variant,
		Kernel:    circle.Scalar.Name(),
		Lanes:     1,
		Requested: totalTrials,
	}
	if variant == PoolBackedVectorized {
		r.Kernel = e.opts.kernel.Name()
		r.Lanes = e.opts.kernel.Lanes()
	}

	var shares []int64
	if variant.Threaded() {
		shares = Split(totalTrials, workerCount, e.opts.partition)
	} else {
		shares = []int64{totalTrials}
	}
	e.grow(len(shares))

	slots := make([]slot, len(shares))
	if variant.Threaded() {
		var wg sync.WaitGroup
		for i, trials := range shares {
			wg.Go(func() {
				e.runWorker(&slots[i].WorkerResult, variant, i, trials)
			})
		}
		wg.Wait()
	} else {
		e.runWorker(&slots[0].WorkerResult, variant, 0, shares[0])
	}

	r.Workers = lo.Map(slots, func(s slot, _ int) WorkerResult {
		return s.WorkerResult
	})
	ok := lo.Filter(r.Workers, func(w WorkerResult, _ int) bool {
		return w.Err == nil
	})
	r.Hits = lo.SumBy(ok, func(w WorkerResult) int64 { return w.Hits })
	r.Trials = lo.SumBy(ok, func(w WorkerResult) int64 { return w.Trials })

	if len(ok) == len(r.Workers) {
		return r, nil
	}
	failed := lo.FilterMap(r.Workers, func(w WorkerResult, _ int) (*WorkerError, bool) {
		if w.Err == nil {
			return nil, false
		}
		return &WorkerError{Worker: w.Worker, Trials: w.Trials, Err: w.Err}, true
	})
	return r, &RunError{Workers: len(r.Workers), Failed: failed}
}

func (e *Estimator) runWorker(out *WorkerResult, variant Variant, i int, trials int64) {
	out.Worker = i
	out.Trials = trials
	if e.opts.pin && variant.Threaded() {
		// No matching UnlockOSThread: the pinned thread dies with the
		// goroutine instead of returning to the scheduler.
		runtime.LockOSThread()
		out.Pinned = affinity.Pin(i%runtime.NumCPU()) == nil
	}
	out.Hits, out.Err = e.workers[i].Run(variant, trials)
}

// grow makes sure there is a context for each of n workers.
func (e *Estimator) grow(n int) {
	for i := len(e.workers); i < n; i++ {
		e.workers = append(e.workers,
			NewWorkerContext(i, e.opts.seed, e.opts.seeded, e.opts.kernel, e.opts.arenaSize))
	}
}

// Workers returns the worker contexts created so far.
func (e *Estimator) Workers() []*WorkerContext {
	return e.workers
}

// Close releases every worker's arena. The Estimator may be reused
// afterwards; arenas are recreated on demand.
func (e *Estimator) Close() error {
	var errs []error
	for _, w := range e.workers {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}
