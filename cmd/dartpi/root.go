package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/arena"
	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/circle"
	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/montecarlo"
)

const methodAll = "All"

type config struct {
	trials    int64
	method    string
	workers   int64
	arenaSize int
	lanes     int
	seed      uint64
	seeded    bool
	spread    bool
	pin       bool
	repeat    int
	verbose   bool
}

func newLogger(w io.Writer, level zap.AtomicLevel) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level))
}

func newRootCmd(out io.Writer, log *zap.Logger, level zap.AtomicLevel) *cobra.Command {
	cfg := config{
		trials:    100_000_000,
		method:    methodAll,
		workers:   4,
		arenaSize: arena.DefaultSize,
		repeat:    1,
	}

	cmd := &cobra.Command{
		Use:   "dartpi [trials] [method]",
		Short: "Estimate π by Monte Carlo dart throwing and time each strategy",
		Long: `dartpi samples points in the unit square and counts those inside the
quarter circle. Each method uses a different memory and vectorization
strategy; the trials and method may be given positionally or as flags.

Methods: ` + strings.Join(methodNames(), ", "),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cfg.verbose {
				level.SetLevel(zap.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				n, err := parseTrials(args[0])
				if err != nil {
					return err
				}
				cfg.trials = n
			}
			if len(args) > 1 {
				cfg.method = args[1]
			}
			cfg.seeded = cmd.Flags().Changed("seed")
			return runBenchmarks(out, log, cfg)
		},
	}

	f := cmd.Flags()
	f.Int64VarP(&cfg.trials, "trials", "n", cfg.trials, "total number of darts to throw")
	f.StringVarP(&cfg.method, "method", "m", cfg.method, "method to run: "+strings.Join(methodNames(), ", "))
	f.Int64VarP(&cfg.workers, "workers", "w", cfg.workers, "worker goroutines for the threaded methods")
	f.IntVar(&cfg.arenaSize, "arena-size", cfg.arenaSize, "per-worker arena capacity in bytes")
	f.IntVar(&cfg.lanes, "lanes", 0, "batch width for SIMD (1, 2, 4 or 8; 0 picks the widest supported)")
	f.Uint64Var(&cfg.seed, "seed", 0, "seed for reproducible runs (default: random)")
	f.BoolVar(&cfg.spread, "spread", false, "sample the trials mod workers remainder instead of dropping it")
	f.BoolVar(&cfg.pin, "pin", false, "pin each worker thread to its own CPU")
	f.IntVar(&cfg.repeat, "repeat", cfg.repeat, "run each method this many times")
	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug detail to stderr")

	cmd.AddCommand(newArchCmd(out))
	return cmd
}

// methodNames lists every accepted method in benchmark order.
func methodNames() []string {
	names := lo.Map(montecarlo.Variants(), func(v montecarlo.Variant, _ int) string {
		return v.String()
	})
	return append(names, methodAll)
}

// selectVariants resolves a method name to the variants it runs.
func selectVariants(method string) ([]montecarlo.Variant, error) {
	if strings.EqualFold(strings.TrimSpace(method), methodAll) {
		return montecarlo.Variants(), nil
	}
	v, err := montecarlo.ParseVariant(method)
	if err != nil {
		return nil, fmt.Errorf("%w; valid options: %s", err, strings.Join(methodNames(), ", "))
	}
	return []montecarlo.Variant{v}, nil
}

// parseTrials accepts a plain integer or an integral float such as "1e7".
func parseTrials(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("invalid trial count %q", s)
	}
	return int64(f), nil
}

func (c config) options() ([]montecarlo.Option, error) {
	if c.arenaSize <= 0 {
		return nil, fmt.Errorf("--arena-size must be positive, got %d", c.arenaSize)
	}
	if c.repeat < 1 {
		return nil, fmt.Errorf("--repeat must be at least 1, got %d", c.repeat)
	}

	opts := []montecarlo.Option{
		montecarlo.WithArenaSize(c.arenaSize),
		montecarlo.WithPinning(c.pin),
	}
	if c.lanes != 0 {
		k, err := circle.KernelFor(c.lanes)
		if err != nil {
			return nil, fmt.Errorf("--lanes: %w", err)
		}
		opts = append(opts, montecarlo.WithKernel(k))
	}
	if c.seeded {
		opts = append(opts, montecarlo.WithSeed(c.seed))
	}
	if c.spread {
		opts = append(opts, montecarlo.WithPartition(montecarlo.PartitionSpread))
	}
	return opts, nil
}
