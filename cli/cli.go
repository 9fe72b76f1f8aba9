package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/perfgo/layoutbench/census"
	"github.com/perfgo/layoutbench/cli/perf"
	"github.com/perfgo/layoutbench/metrics"
	"github.com/perfgo/layoutbench/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "layoutbench"

type App struct {
	logger  zerolog.Logger
	cli     *cli.App
	stdout  io.Writer
	metrics *metrics.Recorder
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	return newApp(logger, os.Stdout)
}

func newApp(logger zerolog.Logger, stdout io.Writer) *App {
	app := &App{
		logger:  logger,
		stdout:  stdout,
		metrics: metrics.NewRecorder(),
		cli: &cli.App{
			Name:   AppName,
			Usage:  "Measure how data layout and traversal order affect cache behaviour",
			Writer: stdout,
			Authors: []*cli.Author{
				{Name: "Christian Simon", Email: fmt.Sprintf("simon+%s@swine.de", AppName)},
			},
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
				&cli.BoolFlag{
					Name:    "record",
					Usage:   "Record the run (arguments, measurements, output) in the history directory",
					EnvVars: []string{"LAYOUTBENCH_RECORD"},
				},
				&cli.BoolFlag{
					Name:    "profile",
					Usage:   "Collect a CPU profile of the run (implies --record)",
					EnvVars: []string{"LAYOUTBENCH_PROFILE"},
				},
				&cli.StringFlag{
					Name:    "history-dir",
					Usage:   "Directory holding recorded runs (default: .layoutbench in the git root or working directory)",
					EnvVars: []string{"LAYOUTBENCH_HISTORY_DIR"},
				},
				&cli.StringFlag{
					Name:    "metrics-textfile",
					Usage:   "Write Prometheus metrics of the run to this file",
					EnvVars: []string{"LAYOUTBENCH_METRICS_TEXTFILE"},
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "rowcol",
		Usage:     "Sum random matrices row by row or column by column",
		ArgsUsage: "<num_rows> <num_cols> [use col-oriented format]",
		Action:    app.measure(model.HistoryTypeRowCol, app.rowcol),
		Flags: []cli.Flag{
			testsFlag(10),
			seedFlag(),
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "Traversal order: row, col or random (overrides the third argument)",
			},
			&cli.BoolFlag{
				Name:  "perf-stat",
				Usage: "Re-execute the measurement under perf stat",
			},
			perf.StatEventFlag(),
			perf.StatDetailFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "median-age",
		Usage:  "Find the median age of a random population",
		Action: app.measure(model.HistoryTypeMedianAge, app.medianAge),
		Flags: []cli.Flag{
			populationFlag(100_000_000),
			&cli.StringFlag{
				Name:    "layout",
				Usage:   fmt.Sprintf("Population layout: %v", census.LayoutNames()),
				Value:   "columns",
				EnvVars: []string{"LAYOUTBENCH_LAYOUT"},
			},
			seedFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:  "compare",
		Usage: "Compare the variants of an experiment over several rounds",
		Subcommands: []*cli.Command{
			{
				Name:      "traversal",
				Usage:     "Compare row, column and random traversal of the same matrices",
				ArgsUsage: "<num_rows> <num_cols>",
				Action:    app.measure(model.HistoryTypeCompare, app.compareTraversal),
				Flags: []cli.Flag{
					testsFlag(10),
					roundsFlag(),
					seedFlag(),
					jsonFlag(),
				},
			},
			{
				Name:   "layout",
				Usage:  "Compare records and columns for bucketize by age plus median",
				Action: app.measure(model.HistoryTypeCompare, app.compareLayout),
				Flags: []cli.Flag{
					populationFlag(1_000_000),
					testsFlag(10),
					roundsFlag(),
					seedFlag(),
					jsonFlag(),
				},
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "suite",
		Usage:     "Run the comparisons listed in a YAML plan",
		ArgsUsage: "<plan.yaml>",
		Action:    app.measure(model.HistoryTypeSuite, app.suite),
		Flags: []cli.Flag{
			jsonFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List recorded runs",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Filter by run type (rowcol, median-age, compare, suite)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:            "view",
		Usage:           "View a recorded run",
		ArgsUsage:       "[ID|INDEX]",
		Action:          app.view,
		SkipFlagParsing: true,
		Description: `View a recorded run.

Arguments:
  0           View last run (default)
  -1          View 2nd last run
  -2          View 3rd last run
  <hex-id>    View run matching the hex ID prefix

Examples:
  layoutbench view           # View last run
  layoutbench view -1        # View 2nd last run
  layoutbench view abc123    # View run with ID starting with abc123
  layoutbench view -- -top   # Pass -top to pprof

Display Priority:
  1. CPU profiles (cpu.pb.gz)
  2. Perf stat outputs
  3. Run stdout`,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && len(commit) >= 8 {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
