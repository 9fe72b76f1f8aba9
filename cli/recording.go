package cli

// This file contains the run lifecycle shared by all measuring commands:
// history directory setup, CPU profiling, output capture and writing the
// run metadata and metrics once the command finished.

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/perfgo/layoutbench/history"
	"github.com/perfgo/layoutbench/model"
	"github.com/urfave/cli/v2"
)

// run is the state of one measuring command.
type run struct {
	history *model.History
	// dir is the history directory of the run, empty when not recording.
	dir string
	// out receives everything the command prints.
	out io.Writer
	// captured holds a copy of out while recording.
	captured bytes.Buffer
	// skip drops the run from history and metrics, e.g. after printing usage.
	skip bool
}

type runAction func(ctx *cli.Context, r *run) error

func (a *App) measure(kind model.HistoryType, action runAction) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		startTime := time.Now()

		r, err := a.newRun(kind, startTime)
		if err != nil {
			return err
		}

		recording := ctx.Bool("record") || ctx.Bool("profile")
		if recording {
			root, err := a.historyRoot(ctx)
			if err != nil {
				return err
			}

			// Create history directory early so artifacts can be written directly to it
			r.dir, err = history.RunDir(root, r.history)
			if err != nil {
				return fmt.Errorf("failed to prepare history directory: %w", err)
			}
			r.out = io.MultiWriter(a.stdout, &r.captured)
		}

		var stopProfile func() error
		if ctx.Bool("profile") {
			stopProfile, err = a.startCPUProfile(r.dir)
			if err != nil {
				return err
			}
		}

		finalErr := action(ctx, r)

		if stopProfile != nil {
			if err := stopProfile(); err != nil {
				a.logger.Warn().Err(err).Msg("Failed to stop CPU profile")
			} else if !r.skip {
				a.registerProfile(r)
			}
		}

		if recording {
			if r.skip {
				if err := os.RemoveAll(r.dir); err != nil {
					a.logger.Debug().Err(err).Str("dir", r.dir).Msg("Failed to remove unused run directory")
				}
			} else {
				r.history.Duration = time.Since(startTime)
				r.history.ExitCode = exitCode(finalErr)

				// Record the history (non-fatal if it fails)
				if err := a.recordHistory(r); err != nil {
					a.logger.Warn().Err(err).Msg("Failed to record history")
				}
			}
		}

		if path := ctx.String("metrics-textfile"); path != "" && !r.skip {
			if err := a.metrics.WriteTextfile(path); err != nil {
				if finalErr == nil {
					return err
				}
				a.logger.Warn().Err(err).Msg("Failed to write metrics textfile")
			} else {
				a.logger.Debug().Str("path", path).Msg("Wrote metrics textfile")
			}
		}

		return finalErr
	}
}

func (a *App) newRun(kind model.HistoryType, startTime time.Time) (*run, error) {
	// Generate random 16-byte ID
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	h := &model.History{
		ID:        hex.EncodeToString(idBytes),
		Type:      kind,
		Timestamp: startTime,
		Args:      os.Args,
		Command:   shellescape.QuoteCommand(os.Args),
		Target: &model.Target{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			CPUs:      runtime.NumCPU(),
			GoVersion: runtime.Version(),
		},
	}

	return &run{history: h, out: a.stdout}, nil
}

func (a *App) historyRoot(ctx *cli.Context) (string, error) {
	if dir := ctx.String("history-dir"); dir != "" {
		return dir, nil
	}
	return history.DefaultRoot()
}

func (a *App) recordHistory(r *run) error {
	h := r.history

	// Capture working directory
	if cwd, err := os.Getwd(); err == nil {
		h.WorkDir = cwd
	}

	// Capture git info (non-fatal if it fails)
	if commit, branch, err := a.getGitInfo(); err == nil {
		h.Git = &model.Git{
			Commit: commit,
			Branch: branch,
		}
	} else {
		a.logger.Debug().Err(err).Msg("No git information available")
	}

	// Write stdout to file if present
	if r.captured.Len() > 0 {
		if err := os.WriteFile(filepath.Join(r.dir, "stdout.txt"), r.captured.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}
		a.addArtifact(r, model.ArtifactTypeStdout, "stdout.txt")
	}

	if err := history.Write(r.dir, h); err != nil {
		return err
	}

	a.logger.Info().Str("dir", r.dir).Str("id", h.ID[:8]).Msg("Recorded run")
	return nil
}

// addArtifact registers a file that was written into the run directory.
func (a *App) addArtifact(r *run, typ model.ArtifactType, file string) {
	info, err := os.Stat(filepath.Join(r.dir, file))
	if err != nil {
		a.logger.Warn().Err(err).Str("file", file).Msg("Artifact not found")
		return
	}
	r.history.Artifacts = append(r.history.Artifacts, model.Artifact{
		Type: typ,
		Size: uint64(info.Size()),
		File: file,
	})
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
