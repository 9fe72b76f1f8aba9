package cli

// This file contains the median-age command: synthesise a population,
// bucketize it by age and find the median bucket.

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/perfgo/layoutbench/census"
	"github.com/perfgo/layoutbench/model"
	"github.com/urfave/cli/v2"
)

func (a *App) medianAge(ctx *cli.Context, r *run) error {
	population := ctx.Int("population")
	if population < 1 {
		return fmt.Errorf("population must be at least 1, got %d", population)
	}

	layout, err := census.LayoutByName(ctx.String("layout"))
	if err != nil {
		return err
	}

	seed := a.resolveSeed(ctx.Int64("seed"), r)
	rng := rand.New(rand.NewSource(seed))

	a.logger.Info().
		Int("population", population).
		Str("layout", layout.Name).
		Msg("Synthesising population")

	start := time.Now()
	pop := layout.CreateRandom(rng, population)
	a.logger.Debug().Dur("elapsed", time.Since(start)).Msg("Population ready")

	start = time.Now()
	hist := pop.BucketizeByAge(census.AgeBound)
	if total := hist.Total(); total != uint64(population) {
		return fmt.Errorf("histogram holds %d individuals, population has %d", total, population)
	}
	median := census.FindMedianBucket(hist, uint64(population))
	elapsed := time.Since(start)

	fmt.Fprintf(r.out, "Calculation time = %d\n", elapsed.Microseconds())
	fmt.Fprintf(r.out, "Median age = %d\n", median)

	a.metrics.ObserveMedian(layout.Name, median, elapsed)
	r.history.Median = &model.MedianResult{
		Layout:            layout.Name,
		Population:        population,
		MedianAge:         median,
		CalculationMicros: elapsed.Microseconds(),
	}
	return nil
}
