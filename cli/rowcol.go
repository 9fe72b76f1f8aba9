package cli

// This file contains the rowcol command: sum random matrices in row or
// column order and print the average time per matrix.

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/perfgo/layoutbench/bench"
	"github.com/perfgo/layoutbench/cli/perf"
	"github.com/perfgo/layoutbench/datagen"
	"github.com/perfgo/layoutbench/matrix"
	"github.com/perfgo/layoutbench/model"
	"github.com/urfave/cli/v2"
)

const rowColUsage = "Usage: layoutbench rowcol <num_rows> <num_cols> [use col-oriented format]"

func (a *App) rowcol(ctx *cli.Context, r *run) error {
	args := ctx.Args().Slice()
	if len(args) < 2 {
		fmt.Fprintln(r.out, rowColUsage)
		r.skip = true
		return nil
	}

	rows, cols, err := parseShape(args[0], args[1])
	if err != nil {
		return err
	}

	pattern := "row"
	if len(args) > 2 {
		pattern = "col"
	}
	if ctx.IsSet("pattern") {
		pattern = ctx.String("pattern")
	}
	traversal, err := matrix.TraversalByName[uint32](pattern)
	if err != nil {
		return err
	}

	tests := ctx.Int("tests")
	if tests < 1 {
		return fmt.Errorf("tests must be at least 1, got %d", tests)
	}
	seed := a.resolveSeed(ctx.Int64("seed"), r)

	if ctx.Bool("perf-stat") {
		childArgs := []string{
			"rowcol",
			"--tests", strconv.Itoa(tests),
			"--seed", strconv.FormatInt(seed, 10),
			"--pattern", traversal.Name,
			strconv.Itoa(rows), strconv.Itoa(cols),
		}
		if ctx.Bool("verbose") {
			childArgs = append([]string{"--verbose"}, childArgs...)
		}
		statOpts := perf.StatOptions{
			Events: ctx.StringSlice("event"),
			Detail: ctx.Bool("detail"),
		}
		avg, err := a.executeUnderPerfStat(r, statOpts, childArgs)
		if err != nil {
			return err
		}
		r.history.Measurements = append(r.history.Measurements, model.Measurement{
			Experiment:    "rowcol",
			Variant:       traversal.Name,
			AverageMicros: avg,
			Datasets:      tests,
		})
		return nil
	}

	a.logger.Debug().
		Int("rows", rows).
		Int("cols", cols).
		Int("tests", tests).
		Str("pattern", traversal.Name).
		Msg("Generating matrices")

	rng := rand.New(rand.NewSource(seed))
	datasets := datagen.UniformMatrices(rng, tests, rows, cols)

	h := bench.New(a.logger, r.out).WithObserver(func(elapsed time.Duration, datasets int) {
		a.metrics.ObserveRun("rowcol", traversal.Name, elapsed, datasets)
	})
	result, err := bench.Run(h, traversal.New(cols, rng), datasets)
	if err != nil {
		return err
	}

	avg := result.AverageMicros()
	fmt.Fprintf(r.out, "Average time (us): %s\n", formatAverage(avg))

	r.history.Measurements = append(r.history.Measurements, model.Measurement{
		Experiment:    "rowcol",
		Variant:       traversal.Name,
		AverageMicros: avg,
		Datasets:      result.Datasets,
		Observed:      strconv.FormatUint(uint64(result.Observed), 10),
	})
	return nil
}
