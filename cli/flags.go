package cli

import "github.com/urfave/cli/v2"

func testsFlag(value int) cli.Flag {
	return &cli.IntFlag{
		Name:    "tests",
		Usage:   "Number of random datasets to time",
		Value:   value,
		EnvVars: []string{"LAYOUTBENCH_TESTS"},
	}
}

func seedFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:    "seed",
		Usage:   "Seed of the dataset generator (0 picks a time based seed)",
		EnvVars: []string{"LAYOUTBENCH_SEED"},
	}
}

func roundsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "rounds",
		Usage:   "Number of timed rounds per variant (6 or more for a confidence interval)",
		Value:   6,
		EnvVars: []string{"LAYOUTBENCH_ROUNDS"},
	}
}

func populationFlag(value int) cli.Flag {
	return &cli.IntFlag{
		Name:    "population",
		Usage:   "Number of individuals in the population",
		Value:   value,
		EnvVars: []string{"LAYOUTBENCH_POPULATION"},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the report as JSON instead of markdown",
	}
}
