package cli

// This file contains CPU profile handling: collecting a runtime/pprof
// profile into the run directory and summarising it after the run.

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/google/pprof/profile"
	"github.com/perfgo/layoutbench/model"
)

const cpuProfileFile = "cpu.pb.gz"

func (a *App) startCPUProfile(runDir string) (func() error, error) {
	profilePath := filepath.Join(runDir, cpuProfileFile)
	f, err := os.Create(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CPU profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}

	a.logger.Debug().Str("path", profilePath).Msg("CPU profiling started")

	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}

func (a *App) registerProfile(r *run) {
	profilePath := filepath.Join(r.dir, cpuProfileFile)
	summary, err := summarizeProfile(profilePath, 5)
	if err != nil {
		a.logger.Warn().Err(err).Str("path", profilePath).Msg("Failed to parse CPU profile")
		return
	}

	a.addArtifact(r, model.ArtifactTypePprofProfile, cpuProfileFile)

	a.logger.Info().
		Int("samples", summary.Samples).
		Int("functions", summary.Functions).
		Dur("duration", summary.Duration).
		Msg("CPU profile collected")
	for _, fn := range summary.Top {
		a.logger.Info().
			Str("function", fn.Name).
			Float64("flat_pct", fn.FlatPercent).
			Msg("Top function")
	}
}

type profileSummary struct {
	Samples   int
	Functions int
	Duration  time.Duration
	Top       []functionCost
}

type functionCost struct {
	Name        string
	Flat        int64
	FlatPercent float64
}

// summarizeProfile parses a pprof profile and returns the n functions with
// the highest flat value of the last sample type.
func summarizeProfile(path string, n int) (*profileSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	prof, err := profile.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	summary := &profileSummary{
		Samples:   len(prof.Sample),
		Functions: len(prof.Function),
		Duration:  time.Duration(prof.DurationNanos),
	}
	if len(prof.SampleType) == 0 {
		return summary, nil
	}
	valueIdx := len(prof.SampleType) - 1

	flat := make(map[string]int64)
	var total int64
	for _, s := range prof.Sample {
		if len(s.Location) == 0 || len(s.Value) <= valueIdx {
			continue
		}
		v := s.Value[valueIdx]
		total += v

		// The leaf frame is the first line of the first location.
		name := "[unknown]"
		if lines := s.Location[0].Line; len(lines) > 0 && lines[0].Function != nil {
			name = lines[0].Function.Name
		}
		flat[name] += v
	}

	for name, v := range flat {
		cost := functionCost{Name: name, Flat: v}
		if total > 0 {
			cost.FlatPercent = float64(v) / float64(total) * 100
		}
		summary.Top = append(summary.Top, cost)
	}
	sort.Slice(summary.Top, func(i, j int) bool {
		if summary.Top[i].Flat != summary.Top[j].Flat {
			return summary.Top[i].Flat > summary.Top[j].Flat
		}
		return summary.Top[i].Name < summary.Top[j].Name
	})
	if len(summary.Top) > n {
		summary.Top = summary.Top[:n]
	}

	return summary, nil
}
