package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/hwy-montecarlo/hwy"
	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/montecarlo"
)

// runBenchmarks times every selected variant cfg.repeat times on one
// Estimator, so worker arenas are reused from run to run.
func runBenchmarks(out io.Writer, log *zap.Logger, cfg config) error {
	variants, err := selectVariants(cfg.method)
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	log.Info("platform",
		zap.String("os", runtime.GOOS),
		zap.String("arch", runtime.GOARCH),
		zap.Stringer("simd", hwy.CurrentLevel()),
		zap.Int("lanes", hwy.MaxLanes64()))

	e := montecarlo.NewEstimator(opts...)
	defer func() {
		if err := e.Close(); err != nil {
			log.Warn("releasing arenas", zap.Error(err))
		}
	}()

	p := message.NewPrinter(language.English)
	var failed []error
	for _, v := range variants {
		for i := range cfg.repeat {
			start := time.Now()
			r, err := e.Run(v, cfg.trials, cfg.workers)
			elapsed := time.Since(start)

			var re *montecarlo.RunError
			switch {
			case errors.As(err, &re):
				for _, w := range re.Failed {
					log.Error("worker failed",
						zap.Stringer("method", v),
						zap.Int("worker", w.Worker),
						zap.Int64("trials", w.Trials),
						zap.Error(w.Err))
				}
				failed = append(failed, fmt.Errorf("%s: %w", v, err))
			case err != nil:
				return err
			}

			report(p, out, label(v, i, cfg.repeat), r, elapsed)
			logRun(log, e, r)
		}
	}
	return errors.Join(failed...)
}

// label names a run the way the report prints it.
func label(v montecarlo.Variant, run, repeat int) string {
	name := v.String()
	if v.Threaded() {
		name += " (Threaded)"
	}
	if repeat > 1 {
		name = fmt.Sprintf("%s #%d", name, run+1)
	}
	return name
}

func report(p *message.Printer, w io.Writer, name string, r montecarlo.Result, elapsed time.Duration) {
	p.Fprintf(w, "%s:\n", name)
	p.Fprintf(w, "  Trials: %d\n", r.Trials)
	p.Fprintf(w, "  Hits: %d\n", r.Hits)
	p.Fprintf(w, "  Estimate: %.8f\n", r.Pi())
	p.Fprintf(w, "  Time: %.6fs (%d ns)\n", elapsed.Seconds(), elapsed.Nanoseconds())
}

func logRun(log *zap.Logger, e *montecarlo.Estimator, r montecarlo.Result) {
	if d := r.Dropped(); d > 0 {
		log.Debug("trials not sampled",
			zap.Stringer("method", r.Variant),
			zap.Int64("requested", r.Requested),
			zap.Int64("dropped", d))
	}
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}
	log.Debug("kernel", zap.String("name", r.Kernel), zap.Int("lanes", r.Lanes))
	for _, w := range r.Workers {
		fields := []zap.Field{
			zap.Int("worker", w.Worker),
			zap.Int64("trials", w.Trials),
			zap.Int64("hits", w.Hits),
			zap.Bool("pinned", w.Pinned),
		}
		if a := e.Workers()[w.Worker].Arena(); a != nil {
			m := a.Metrics()
			fields = append(fields,
				zap.Int("arena_in_use", m.InUse),
				zap.Int("arena_high_water", m.HighWater),
				zap.Uint64("arena_resets", m.Resets))
		}
		log.Debug("worker", fields...)
	}
}
