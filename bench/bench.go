// Package bench times a pluggable computation over a collection of
// pre-generated datasets.
//
// The harness feeds every dataset to the computation in order and adds each
// result to a running total. The total is written out once the clock has
// stopped so the compiler cannot prove the calls are dead and drop them.
package bench

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoDatasets is returned when the harness is asked to time an empty collection.
var ErrNoDatasets = errors.New("no datasets to benchmark")

// Number is any result type that can be summed and printed.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Computation maps one dataset to a result. Implementations should be pure
// functions of their argument, the harness does not check this.
type Computation[D any, R Number] interface {
	Compute(dataset D) R
}

// ComputationFunc adapts an ordinary function to a Computation.
type ComputationFunc[D any, R Number] func(dataset D) R

// Compute calls f(dataset).
func (f ComputationFunc[D, R]) Compute(dataset D) R {
	return f(dataset)
}

// Harness carries the sinks used while timing.
type Harness struct {
	logger   zerolog.Logger
	out      io.Writer
	observer Observer
}

// Observer is notified after every run with its elapsed time and dataset count.
type Observer func(elapsed time.Duration, datasets int)

// New creates a Harness. Accumulated totals are written to out, a nil out discards them.
func New(logger zerolog.Logger, out io.Writer) *Harness {
	if out == nil {
		out = io.Discard
	}
	return &Harness{
		logger: logger,
		out:    out,
	}
}

// WithObserver returns a copy of h that reports every run to fn.
func (h *Harness) WithObserver(fn Observer) *Harness {
	c := *h
	c.observer = fn
	return &c
}

// Result is the outcome of a single harness run.
type Result[R Number] struct {
	// Elapsed is the wall-clock time spent on the whole collection.
	Elapsed time.Duration
	// Datasets is the number of datasets the computation ran on.
	Datasets int
	// Observed is the sum of all computation results.
	Observed R
}

// AverageMicros returns the average time per dataset in microseconds.
func (r Result[R]) AverageMicros() float64 {
	if r.Datasets == 0 {
		return 0
	}
	return float64(r.Elapsed) / float64(time.Microsecond) / float64(r.Datasets)
}

// Run executes c once per dataset, in order, and returns the elapsed time.
// The accumulation itself is inside the timed region.
func Run[D any, R Number](h *Harness, c Computation[D, R], datasets []D) (Result[R], error) {
	if len(datasets) == 0 {
		return Result[R]{}, ErrNoDatasets
	}

	var observed R

	start := time.Now()
	for _, dataset := range datasets {
		observed += c.Compute(dataset)
	}
	elapsed := time.Since(start)

	if _, err := fmt.Fprintln(h.out, observed); err != nil {
		return Result[R]{}, fmt.Errorf("failed to write observed total: %w", err)
	}

	result := Result[R]{
		Elapsed:  elapsed,
		Datasets: len(datasets),
		Observed: observed,
	}

	if h.observer != nil {
		h.observer(elapsed, result.Datasets)
	}

	h.logger.Debug().
		Int("datasets", result.Datasets).
		Dur("elapsed", elapsed).
		Float64("avg_us", result.AverageMicros()).
		Msg("Benchmark run finished")

	return result, nil
}

// Rounds repeats Run over the same datasets and returns every round's result.
func Rounds[D any, R Number](h *Harness, c Computation[D, R], datasets []D, rounds int) ([]Result[R], error) {
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1, got %d", rounds)
	}

	results := make([]Result[R], 0, rounds)
	for i := 0; i < rounds; i++ {
		result, err := Run(h, c, datasets)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// Averages returns the average microseconds per dataset of every result.
func Averages[R Number](results []Result[R]) []float64 {
	samples := make([]float64, len(results))
	for i, r := range results {
		samples[i] = r.AverageMicros()
	}
	return samples
}
