package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/perfgo/layoutbench/history"
	"github.com/perfgo/layoutbench/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRemoveFirstDashDash(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "empty slice",
			in:   []string{},
			want: []string{},
		},
		{
			name: "starts with --",
			in:   []string{"--", "-http=:8080", "-top"},
			want: []string{"-http=:8080", "-top"},
		},
		{
			name: "no --",
			in:   []string{"-top"},
			want: []string{"-top"},
		},
		{
			name: "only --",
			in:   []string{"--"},
			want: []string{},
		},
		{
			name: "-- in middle",
			in:   []string{"-top", "--", "-http=:8080"},
			want: []string{"-top", "--", "-http=:8080"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, removeFirstDashDash(tt.in))
		})
	}
}

func TestParseViewArgs(t *testing.T) {
	tests := []struct {
		name          string
		in            []string
		wantID        string
		wantPprofArgs []string
	}{
		{
			name:   "empty args - default to 0",
			in:     []string{},
			wantID: "0",
		},
		{
			name:          "only ID - negative index",
			in:            []string{"-1"},
			wantID:        "-1",
			wantPprofArgs: []string{},
		},
		{
			name:          "only ID - hex string",
			in:            []string{"abc123"},
			wantID:        "abc123",
			wantPprofArgs: []string{},
		},
		{
			name:          "only pprof args",
			in:            []string{"-top"},
			wantID:        "0",
			wantPprofArgs: []string{"-top"},
		},
		{
			name:          "ID with -- separator and pprof args",
			in:            []string{"0", "--", "-list=SumColOriented", "-top"},
			wantID:        "0",
			wantPprofArgs: []string{"-list=SumColOriented", "-top"},
		},
		{
			name:          "only -- uses default 0",
			in:            []string{"--", "-http=:8080"},
			wantID:        "0",
			wantPprofArgs: []string{"-http=:8080"},
		},
		{
			name:          "negative index with multiple pprof args",
			in:            []string{"-2", "-http=:8080", "-nodefraction=0.1"},
			wantID:        "-2",
			wantPprofArgs: []string{"-http=:8080", "-nodefraction=0.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotPprofArgs := parseViewArgs(tt.in)
			require.Equal(t, tt.wantID, gotID)
			require.Equal(t, tt.wantPprofArgs, gotPprofArgs)
		})
	}
}

func TestDisplayHistoryEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "perf-stat.txt"), []byte("1,234 L1-dcache-load-misses"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stdout.txt"), []byte("Average time (us): 12"), 0644))

	entry := &history.Entry{
		FullPath: dir,
		History: model.History{
			ID:        "0123456789abcdef",
			Type:      model.HistoryTypeRowCol,
			Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Seed:      7,
			Git:       &model.Git{Commit: "feedfacecafebeef", Branch: "main"},
			Perf:      &model.Perf{Stat: &model.PerfStat{Events: []string{"L1-dcache-load-misses"}}},
			Measurements: []model.Measurement{
				{Experiment: "rowcol", Variant: "col", AverageMicros: 12, Datasets: 10},
			},
			Artifacts: []model.Artifact{
				{Type: model.ArtifactTypeStdout, File: "stdout.txt"},
				{Type: model.ArtifactTypePerfStat, File: "perf-stat.txt"},
			},
		},
	}

	var out bytes.Buffer
	a := newApp(zerolog.Nop(), &out)
	require.NoError(t, a.displayHistoryEntry(entry, nil))

	output := out.String()
	require.Contains(t, output, "=== Run: 01234567 (rowcol) ===")
	require.Contains(t, output, "Seed: 7")
	require.Contains(t, output, "Git Commit: feedface (main)")
	require.Contains(t, output, "rowcol/col: 12 us over 10 datasets")
	// perf stat output wins over stdout
	require.Contains(t, output, "1,234 L1-dcache-load-misses")
	require.NotContains(t, output, "Average time (us): 12")
}
