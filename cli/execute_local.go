package cli

// This file contains local re-execution of a measurement under perf stat.

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/perfgo/layoutbench/cli/perf"
	"github.com/perfgo/layoutbench/model"
)

const perfStatFile = "perf-stat.txt"

// parentOnlyEnv lists the variables that enable per-run side effects. The
// parent run already records, profiles and exports metrics, so the measured
// child must not do so again.
var parentOnlyEnv = []string{
	"LAYOUTBENCH_RECORD",
	"LAYOUTBENCH_PROFILE",
	"LAYOUTBENCH_METRICS_TEXTFILE",
}

// childEnv returns environ without the parentOnlyEnv variables.
func childEnv(environ []string) []string {
	env := make([]string, 0, len(environ))
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if slices.Contains(parentOnlyEnv, name) {
			continue
		}
		env = append(env, kv)
	}
	return env
}

// executeUnderPerfStat runs this binary with args under perf stat and returns
// the average reported by the child.
func (a *App) executeUnderPerfStat(r *run, statOpts perf.StatOptions, args []string) (float64, error) {
	binary, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to locate executable: %w", err)
	}

	statOpts.Binary = binary
	statOpts.Args = args
	perfArgs := perf.BuildStatArgs(statOpts)
	cmd := exec.Command("perf", perfArgs...)
	cmd.Env = childEnv(os.Environ())

	a.logger.Info().
		Strs("events", statOpts.Events).
		Bool("detail", statOpts.Detail).
		Str("command", perf.BuildStatCommand(statOpts)).
		Msg("Wrapping measurement with perf stat")

	r.history.Perf = &model.Perf{
		Stat: &model.PerfStat{
			Events: statOpts.Events,
			Detail: statOpts.Detail,
		},
	}

	// Capture stdout and stderr while still displaying them
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(r.out, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)

	runErr := cmd.Run()

	if r.dir != "" && stderrBuf.Len() > 0 {
		if err := os.WriteFile(filepath.Join(r.dir, perfStatFile), stderrBuf.Bytes(), 0644); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to write perf stat output")
		} else {
			a.addArtifact(r, model.ArtifactTypePerfStat, perfStatFile)
		}
	}

	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			a.logger.Info().
				Int("exit_code", exitErr.ExitCode()).
				Msg("Measurement under perf stat failed")
			return 0, fmt.Errorf("perf stat exited with code %d: %w", exitErr.ExitCode(), runErr)
		}
		return 0, fmt.Errorf("failed to execute perf stat: %w", runErr)
	}

	return parseAverage(stdoutBuf.String())
}
