package montecarlo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is wrapped by every *ConfigError.
	ErrInvalidConfig = errors.New("montecarlo: invalid configuration")

	// ErrUnknownVariant is returned for a Variant or method name outside
	// the supported set.
	ErrUnknownVariant = errors.New("montecarlo: unknown variant")
)

// ConfigError rejects a run before any worker is started.
type ConfigError struct {
	Field string
	Value int64
	Max   int64 // inclusive upper bound; 0 when only positivity is required
}

func (e *ConfigError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("montecarlo: invalid configuration: %s must be in [1, %d], got %d", e.Field, e.Max, e.Value)
	}
	return fmt.Sprintf("montecarlo: invalid configuration: %s must be positive, got %d", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// WorkerError attributes a failure to the worker that hit it.
type WorkerError struct {
	Worker int
	Trials int64
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d (%d trials): %v", e.Worker, e.Trials, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// RunError reports the workers that failed in an otherwise completed run.
// The Result returned alongside it still holds the successful workers'
// hits.
type RunError struct {
	Workers int
	Failed  []*WorkerError
}

func (e *RunError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "montecarlo: %d of %d workers failed", len(e.Failed), e.Workers)
	for _, w := range e.Failed {
		b.WriteString("; ")
		b.WriteString(w.Error())
	}
	return b.String()
}

// Unwrap exposes each worker failure to errors.Is and errors.As.
func (e *RunError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, w := range e.Failed {
		errs[i] = w
	}
	return errs
}
