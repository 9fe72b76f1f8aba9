// Package experiment runs the side by side comparisons of layoutbench: every
// variant of an experiment is timed over the same datasets for several
// rounds and compared against the first variant.
package experiment

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/perfgo/layoutbench/bench"
	"github.com/perfgo/layoutbench/census"
	"github.com/perfgo/layoutbench/datagen"
	"github.com/perfgo/layoutbench/matrix"
)

// ErrInvalidParams is returned for non-positive sizes or counts.
var ErrInvalidParams = errors.New("invalid experiment parameters")

// Params are shared by all experiments.
type Params struct {
	// Tests is the number of datasets per variant.
	Tests int
	// Rounds is the number of timed passes over the datasets.
	Rounds int
	// Observe, when set, is called after every timed round.
	Observe func(experiment, variant string, elapsed time.Duration, datasets int)
}

func (p Params) harness(h *bench.Harness, experiment, variant string) *bench.Harness {
	if p.Observe == nil {
		return h
	}
	return h.WithObserver(func(elapsed time.Duration, datasets int) {
		p.Observe(experiment, variant, elapsed, datasets)
	})
}

func (p Params) validate() error {
	if p.Tests < 1 {
		return fmt.Errorf("%w: tests must be at least 1, got %d", ErrInvalidParams, p.Tests)
	}
	if p.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidParams, p.Rounds)
	}
	return nil
}

// Variant is one timed alternative.
type Variant struct {
	Name     string        `json:"name"`
	Samples  []float64     `json:"samples_us"`
	Summary  bench.Summary `json:"summary"`
	Observed string        `json:"observed"`
	// Comparison against the baseline, nil for the baseline itself.
	Comparison *bench.Comparison `json:"comparison,omitempty"`
}

// Outcome is the result of one experiment. The first variant is the baseline.
type Outcome struct {
	Experiment string    `json:"experiment"`
	Tests      int       `json:"tests"`
	Rounds     int       `json:"rounds"`
	Variants   []Variant `json:"variants"`
}

// Baseline returns the first variant.
func (o Outcome) Baseline() Variant {
	return o.Variants[0]
}

// Traversal compares all matrix traversals over the same random rows x cols matrices.
func Traversal(h *bench.Harness, rng *rand.Rand, rows, cols int, p Params) (Outcome, error) {
	if err := p.validate(); err != nil {
		return Outcome{}, err
	}
	if rows < 1 || cols < 1 {
		return Outcome{}, fmt.Errorf("%w: matrix shape must be positive, got %dx%d", ErrInvalidParams, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return Outcome{}, fmt.Errorf("%w: matrix shape %dx%d overflows", ErrInvalidParams, rows, cols)
	}

	datasets := datagen.UniformMatrices(rng, p.Tests, rows, cols)

	outcome := Outcome{
		Experiment: fmt.Sprintf("traversal %dx%d", rows, cols),
		Tests:      p.Tests,
		Rounds:     p.Rounds,
	}

	for _, t := range matrix.Traversals[uint32]() {
		results, err := bench.Rounds(p.harness(h, outcome.Experiment, t.Name), t.New(cols, rng), datasets, p.Rounds)
		if err != nil {
			return Outcome{}, fmt.Errorf("traversal %s: %w", t.Name, err)
		}
		outcome.Variants = append(outcome.Variants, Variant{
			Name:     t.Name,
			Samples:  bench.Averages(results),
			Observed: strconv.FormatUint(uint64(results[len(results)-1].Observed), 10),
		})
	}

	outcome.compare()
	return outcome, nil
}

// Layout compares the census layouts by timing bucketize by age plus the
// median search over random populations.
func Layout(h *bench.Harness, rng *rand.Rand, population int, p Params) (Outcome, error) {
	if err := p.validate(); err != nil {
		return Outcome{}, err
	}
	if population < 1 {
		return Outcome{}, fmt.Errorf("%w: population must be at least 1, got %d", ErrInvalidParams, population)
	}

	outcome := Outcome{
		Experiment: fmt.Sprintf("layout %d", population),
		Tests:      p.Tests,
		Rounds:     p.Rounds,
	}

	for _, layout := range census.Layouts {
		datasets := datagen.Generate(func() census.Population {
			return layout.CreateRandom(rng, population)
		}, p.Tests)

		c := bench.ComputationFunc[census.Population, uint64](MedianAge)
		results, err := bench.Rounds[census.Population, uint64](p.harness(h, outcome.Experiment, layout.Name), c, datasets, p.Rounds)
		if err != nil {
			return Outcome{}, fmt.Errorf("layout %s: %w", layout.Name, err)
		}
		outcome.Variants = append(outcome.Variants, Variant{
			Name:     layout.Name,
			Samples:  bench.Averages(results),
			Observed: strconv.FormatUint(results[len(results)-1].Observed, 10),
		})
	}

	outcome.compare()
	return outcome, nil
}

// MedianAge buckets a population by age and returns the median age.
func MedianAge(p census.Population) uint64 {
	hist := p.BucketizeByAge(census.AgeBound)
	return uint64(census.FindMedianBucket(hist, uint64(p.Len())))
}

func (o *Outcome) compare() {
	baseline := o.Variants[0].Samples
	for i := range o.Variants {
		v := &o.Variants[i]
		v.Summary = bench.Summarize(v.Samples, bench.DefaultConfidence)
		if i == 0 {
			continue
		}
		c := bench.Compare(baseline, v.Samples)
		v.Comparison = &c
	}
}
