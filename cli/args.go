package cli

// This file contains helpers for positional arguments, seeds and number
// formatting shared by the measuring commands.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

func parseDimension(name, arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be at least 1", name, arg)
	}
	return v, nil
}

// parseShape parses a rows and cols pair whose product must fit in an int.
func parseShape(rowsArg, colsArg string) (int, int, error) {
	rows, err := parseDimension("num_rows", rowsArg)
	if err != nil {
		return 0, 0, err
	}
	cols, err := parseDimension("num_cols", colsArg)
	if err != nil {
		return 0, 0, err
	}
	if rows > math.MaxInt/cols {
		return 0, 0, fmt.Errorf("invalid shape %sx%s: too many elements", rowsArg, colsArg)
	}
	return rows, cols, nil
}

// resolveSeed replaces a zero seed with a time based one and stores the seed
// in the run history.
func (a *App) resolveSeed(seed int64, r *run) int64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.logger.Debug().Int64("seed", seed).Msg("Dataset generator seeded")
	r.history.Seed = seed
	return seed
}

// formatAverage prints six significant digits in %g style.
func formatAverage(us float64) string {
	return strconv.FormatFloat(us, 'g', 6, 64)
}

// parseAverage extracts the value of the "Average time (us):" line.
func parseAverage(output string) (float64, error) {
	const prefix = "Average time (us):"
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			if err != nil {
				return 0, fmt.Errorf("failed to parse average %q: %w", rest, err)
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("no %q line in output", prefix)
}
