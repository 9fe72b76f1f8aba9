package cli

// This file contains the view command for displaying recorded runs.

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/perfgo/layoutbench/history"
	"github.com/perfgo/layoutbench/model"
	"github.com/urfave/cli/v2"
)

func removeFirstDashDash(in []string) []string {
	if len(in) > 0 && in[0] == "--" {
		return in[1:]
	}
	return in
}

func parseViewArgs(in []string) (idArg string, pprofArgs []string) {
	if len(in) == 0 {
		return "0", nil
	}

	// If first arg is "--", use default "0" and rest are pprof args
	if in[0] == "--" {
		return "0", in[1:]
	}

	// A negative index is "-" followed by digits only, anything else
	// starting with "-" is a pprof flag.
	if len(in[0]) > 1 && in[0][0] == '-' {
		if _, err := strconv.ParseInt(in[0], 10, 64); err != nil {
			return "0", in
		}
	}

	// First arg is the ID/index, rest are pprof args (with optional "--" removed)
	return in[0], removeFirstDashDash(in[1:])
}

func (a *App) view(ctx *cli.Context) error {
	arg, pprofArgs := parseViewArgs(ctx.Args().Slice())

	root, err := a.historyRoot(ctx)
	if err != nil {
		return err
	}

	historyEntries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(historyEntries) == 0 {
		return fmt.Errorf("no history entries found")
	}

	targetEntry, err := history.Find(historyEntries, arg)
	if err != nil {
		return err
	}

	return a.displayHistoryEntry(targetEntry, pprofArgs)
}

func (a *App) displayHistoryEntry(entry *history.Entry, pprofArgs []string) error {
	h := entry.History
	w := a.stdout

	// Print header
	fmt.Fprintf(w, "=== Run: %s (%s) ===\n", shortID(h.ID), h.Type)
	fmt.Fprintf(w, "Time: %s\n", h.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Duration: %s\n", h.Duration)
	fmt.Fprintf(w, "Exit Code: %d\n", h.ExitCode)
	if h.Command != "" {
		fmt.Fprintf(w, "Command: %s\n", h.Command)
	}
	if h.Seed != 0 {
		fmt.Fprintf(w, "Seed: %d\n", h.Seed)
	}
	if h.WorkDir != "" {
		fmt.Fprintf(w, "Working Dir: %s\n", h.WorkDir)
	}
	if h.Git != nil && h.Git.Commit != "" {
		fmt.Fprintf(w, "Git Commit: %s", shortID(h.Git.Commit))
		if h.Git.Branch != "" {
			fmt.Fprintf(w, " (%s)", h.Git.Branch)
		}
		fmt.Fprintln(w)
	}
	if h.Perf != nil && h.Perf.Stat != nil {
		fmt.Fprintf(w, "Perf Stat: events=%v detail=%t\n", h.Perf.Stat.Events, h.Perf.Stat.Detail)
	}
	for _, m := range h.Measurements {
		fmt.Fprintf(w, "%s/%s: %s us over %d datasets\n", m.Experiment, m.Variant, formatAverage(m.AverageMicros), m.Datasets)
	}
	if h.Median != nil {
		fmt.Fprintf(w, "Median age: %d (%s, %d individuals, %d us)\n",
			h.Median.MedianAge, h.Median.Layout, h.Median.Population, h.Median.CalculationMicros)
	}
	fmt.Fprintln(w)

	// Prioritize artifacts for display
	var profileArtifact, statArtifact, stdoutArtifact *model.Artifact
	for i := range h.Artifacts {
		artifact := &h.Artifacts[i]
		switch artifact.Type {
		case model.ArtifactTypePprofProfile:
			profileArtifact = artifact
		case model.ArtifactTypePerfStat:
			statArtifact = artifact
		case model.ArtifactTypeStdout:
			stdoutArtifact = artifact
		}
	}

	if profileArtifact != nil {
		return a.displayProfile(entry.FullPath, profileArtifact, pprofArgs)
	}

	if statArtifact != nil {
		return a.displayFile(entry.FullPath, statArtifact, "Perf Stat Output")
	}

	if stdoutArtifact != nil {
		return a.displayFile(entry.FullPath, stdoutArtifact, "Output")
	}

	fmt.Fprintln(w, "No displayable artifacts found")
	fmt.Fprintf(w, "History directory: %s\n", entry.FullPath)
	return nil
}

func (a *App) displayProfile(runDir string, artifact *model.Artifact, pprofArgs []string) error {
	profilePath := filepath.Join(runDir, artifact.File)
	fmt.Fprintf(a.stdout, "Profile: %s (%.1f KB)\n", profilePath, float64(artifact.Size)/1024)

	// Build pprof command with any additional args
	args := []string{"tool", "pprof"}
	args = append(args, pprofArgs...)
	args = append(args, profilePath)

	cmd := exec.Command("go", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = a.stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = runDir

	return cmd.Run()
}

func (a *App) displayFile(runDir string, artifact *model.Artifact, title string) error {
	path := filepath.Join(runDir, artifact.File)
	fmt.Fprintf(a.stdout, "%s: %s\n", title, path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", artifact.Type, err)
	}
	fmt.Fprintln(a.stdout, string(data))
	return nil
}
