package cli

// This file contains the list command for displaying recorded runs.

import (
	"fmt"
	"strings"
	"time"

	"github.com/perfgo/layoutbench/history"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	filterType := ctx.String("type")
	limit := ctx.Int("limit")

	root, err := a.historyRoot(ctx)
	if err != nil {
		return err
	}

	// Load all history entries
	historyEntries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	// Apply type filter if specified
	var filteredEntries []history.Entry
	for _, entry := range historyEntries {
		if filterType == "" || strings.EqualFold(string(entry.History.Type), filterType) {
			filteredEntries = append(filteredEntries, entry)
		}
	}

	w := a.stdout
	if len(filteredEntries) == 0 {
		if filterType != "" {
			fmt.Fprintf(w, "No history entries found of type: %s\n", filterType)
		} else {
			fmt.Fprintln(w, "No history entries found")
		}
		return nil
	}

	// Apply limit
	displayRuns := filteredEntries
	if limit > 0 && limit < len(displayRuns) {
		displayRuns = displayRuns[:limit]
	}

	fmt.Fprintf(w, "\n=== History (%d total) ===\n\n", len(filteredEntries))

	for _, entry := range displayRuns {
		h := entry.History
		timestamp := h.Timestamp.Format("2006-01-02 15:04:05")

		// Format duration
		duration := h.Duration.Round(time.Millisecond)

		// Determine status indicator
		status := "✓"
		if h.ExitCode != 0 {
			status = "✗"
		}

		fmt.Fprintf(w, "%s  %s  [%s]  %s  exit=%d  id=%s\n", status, timestamp, duration, h.Type, h.ExitCode, shortID(h.ID))
		if h.Command != "" {
			fmt.Fprintf(w, "   Command: %s\n", h.Command)
		}
		if h.Target != nil && h.Target.OS != "" && h.Target.Arch != "" {
			fmt.Fprintf(w, "   Target: %s/%s, %d CPUs, %s\n", h.Target.OS, h.Target.Arch, h.Target.CPUs, h.Target.GoVersion)
		}
		if h.Git != nil && h.Git.Commit != "" {
			fmt.Fprintf(w, "   Commit: %s", shortID(h.Git.Commit))
			if h.Git.Branch != "" {
				fmt.Fprintf(w, " (%s)", h.Git.Branch)
			}
			fmt.Fprintln(w)
		}
		for _, m := range h.Measurements {
			fmt.Fprintf(w, "   %s/%s: %s us\n", m.Experiment, m.Variant, formatAverage(m.AverageMicros))
		}
		if h.Median != nil {
			fmt.Fprintf(w, "   median age %d (%s, %d individuals, %d us)\n",
				h.Median.MedianAge, h.Median.Layout, h.Median.Population, h.Median.CalculationMicros)
		}
		for _, artifact := range h.Artifacts {
			fmt.Fprintf(w, "   %s: %s (%.1f KB)\n", artifact.Type, artifact.File, float64(artifact.Size)/1024)
		}
		fmt.Fprintf(w, "   %s\n", entry.FullPath)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "View a run: %s view <ID>\n", AppName)

	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
