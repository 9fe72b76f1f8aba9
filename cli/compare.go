package cli

// This file contains the compare and suite commands: every variant of an
// experiment is timed for several rounds and reported side by side.

import (
	"fmt"
	"math/rand"

	"github.com/perfgo/layoutbench/bench"
	"github.com/perfgo/layoutbench/experiment"
	"github.com/perfgo/layoutbench/model"
	"github.com/perfgo/layoutbench/report"
	"github.com/perfgo/layoutbench/suite"
	"github.com/urfave/cli/v2"
)

func (a *App) compareTraversal(ctx *cli.Context, r *run) error {
	args := ctx.Args().Slice()
	if len(args) < 2 {
		fmt.Fprintln(r.out, "Usage: layoutbench compare traversal <num_rows> <num_cols>")
		r.skip = true
		return nil
	}

	rows, cols, err := parseShape(args[0], args[1])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(a.resolveSeed(ctx.Int64("seed"), r)))
	outcome, err := experiment.Traversal(a.harness(), rng, rows, cols, a.params(ctx.Int("tests"), ctx.Int("rounds")))
	if err != nil {
		return err
	}

	return a.report(r, ctx.Bool("json"), []experiment.Outcome{outcome})
}

func (a *App) compareLayout(ctx *cli.Context, r *run) error {
	rng := rand.New(rand.NewSource(a.resolveSeed(ctx.Int64("seed"), r)))
	outcome, err := experiment.Layout(a.harness(), rng, ctx.Int("population"), a.params(ctx.Int("tests"), ctx.Int("rounds")))
	if err != nil {
		return err
	}

	return a.report(r, ctx.Bool("json"), []experiment.Outcome{outcome})
}

func (a *App) suite(ctx *cli.Context, r *run) error {
	if ctx.NArg() < 1 {
		fmt.Fprintln(r.out, "Usage: layoutbench suite <plan.yaml>")
		r.skip = true
		return nil
	}

	config, err := suite.Load(ctx.Args().First())
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(a.resolveSeed(config.Seed, r)))
	params := a.params(config.Tests, config.Rounds)
	h := a.harness()

	var outcomes []experiment.Outcome
	for _, t := range config.Traversals {
		a.logger.Info().Int("rows", t.Rows).Int("cols", t.Cols).Msg("Comparing traversals")
		outcome, err := experiment.Traversal(h, rng, t.Rows, t.Cols, params)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, outcome)
	}
	for _, l := range config.Layouts {
		a.logger.Info().Int("population", l.Population).Msg("Comparing layouts")
		outcome, err := experiment.Layout(h, rng, l.Population, params)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, outcome)
	}

	return a.report(r, ctx.Bool("json"), outcomes)
}

// harness returns a harness that discards the accumulated totals; the
// reports carry them instead.
func (a *App) harness() *bench.Harness {
	return bench.New(a.logger, nil)
}

func (a *App) params(tests, rounds int) experiment.Params {
	return experiment.Params{
		Tests:   tests,
		Rounds:  rounds,
		Observe: a.metrics.ObserveRun,
	}
}

func (a *App) report(r *run, asJSON bool, outcomes []experiment.Outcome) error {
	for _, o := range outcomes {
		for _, v := range o.Variants {
			a.metrics.ObserveAverage(o.Experiment, v.Name, v.Summary.Center)
			r.history.Measurements = append(r.history.Measurements, model.Measurement{
				Experiment:    o.Experiment,
				Variant:       v.Name,
				AverageMicros: v.Summary.Center,
				Datasets:      o.Tests,
				Samples:       v.Samples,
				Observed:      v.Observed,
			})
		}
	}

	if asJSON {
		return report.GenerateJSON(r.out, outcomes)
	}
	return report.Generate(r.out, outcomes)
}
