// Package report formats experiment outcomes into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/perfgo/layoutbench/bench"
	"github.com/perfgo/layoutbench/experiment"
)

// Generate writes a markdown comparison table for every outcome.
func Generate(w io.Writer, outcomes []experiment.Outcome) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## Benchmark Results")

	for _, o := range outcomes {
		if len(o.Variants) == 0 {
			return fmt.Errorf("experiment %q has no variants", o.Experiment)
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "### %s (%d datasets, %d rounds)\n", o.Experiment, o.Tests, o.Rounds)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "| Variant | Avg/dataset | 95% range | Delta | p | Speedup | Observed |")
		fmt.Fprintln(w, "|---------|-------------|-----------|-------|---|---------|----------|")

		base := o.Baseline()
		for _, v := range o.Variants {
			delta, p := "baseline", "-"
			if v.Comparison != nil {
				delta = formatDelta(v.Comparison.Delta, v.Comparison.Significant)
				p = fmt.Sprintf("%.3f", v.Comparison.P)
			}

			speedup := 1.0
			if v.Summary.Center > 0 {
				speedup = base.Summary.Center / v.Summary.Center
			}

			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %.2fx | %s |\n",
				v.Name,
				formatMicros(v.Summary.Center),
				formatRange(v.Summary),
				delta,
				p,
				speedup,
				v.Observed,
			)
		}

		if warnings := collectWarnings(o); len(warnings) > 0 {
			fmt.Fprintln(w)
			for _, warning := range warnings {
				fmt.Fprintf(w, "  - %s\n", warning)
			}
		}
	}

	return nil
}

// GenerateJSON writes outcomes as JSON to w.
func GenerateJSON(w io.Writer, outcomes []experiment.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(outcomes)
}

func collectWarnings(o experiment.Outcome) []string {
	var warnings []string
	for _, v := range o.Variants {
		for _, s := range v.Summary.Warnings {
			warnings = append(warnings, v.Name+": "+s)
		}
		if v.Comparison != nil {
			for _, s := range v.Comparison.Warnings {
				warnings = append(warnings, v.Name+": "+s)
			}
		}
	}
	return warnings
}

func formatDelta(pct float64, significant bool) string {
	if !significant {
		return "~"
	}
	return fmt.Sprintf("%+.2f%%", pct)
}

// formatRange prints the confidence interval, or "-" when it is unbounded.
func formatRange(s bench.Summary) string {
	if s.Lo == nil || s.Hi == nil {
		return "-"
	}
	return formatMicros(*s.Lo) + " - " + formatMicros(*s.Hi)
}

func formatMicros(us float64) string {
	switch {
	case math.IsInf(us, 0) || math.IsNaN(us):
		return "-"
	case us < 1:
		return trimZeros(fmt.Sprintf("%.1fns", us*1000))
	case us < 1000:
		return trimZeros(fmt.Sprintf("%.2fus", us))
	case us < 1e6:
		return trimZeros(fmt.Sprintf("%.2fms", us/1000))
	default:
		return trimZeros(fmt.Sprintf("%.2fs", us/1e6))
	}
}

func trimZeros(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return r != '.' && (r < '0' || r > '9') })
	num, unit := s[:i], s[i:]
	if strings.Contains(num, ".") {
		num = strings.TrimRight(num, "0")
		num = strings.TrimRight(num, ".")
	}
	return num + unit
}
