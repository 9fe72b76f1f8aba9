package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/perfgo/layoutbench/census"
	"github.com/perfgo/layoutbench/experiment"
	"github.com/perfgo/layoutbench/history"
	"github.com/perfgo/layoutbench/matrix"
	"github.com/perfgo/layoutbench/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(zerolog.Nop(), &out)
	err := a.Run(append([]string{AppName}, args...))
	return out.String(), err
}

func TestRowCol(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "row oriented", args: []string{"rowcol", "--seed", "1", "--tests", "3", "4", "8"}},
		{name: "col oriented", args: []string{"rowcol", "--seed", "1", "--tests", "3", "4", "8", "col"}},
		{name: "random pattern", args: []string{"rowcol", "--seed", "1", "--pattern", "random", "4", "8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, tt.args...)
			require.NoError(t, err)
			require.Regexp(t, regexp.MustCompile(`^\d+\nAverage time \(us\): [0-9.e+-]+\n$`), out)
		})
	}
}

func TestRowColSameTotalForBothOrders(t *testing.T) {
	row, err := runApp(t, "rowcol", "--seed", "9", "--tests", "2", "3", "5")
	require.NoError(t, err)
	col, err := runApp(t, "rowcol", "--seed", "9", "--tests", "2", "3", "5", "col")
	require.NoError(t, err)

	require.Equal(t, strings.SplitN(row, "\n", 2)[0], strings.SplitN(col, "\n", 2)[0])
}

func TestRowColUsage(t *testing.T) {
	for _, args := range [][]string{{"rowcol"}, {"rowcol", "10"}} {
		out, err := runApp(t, args...)
		require.NoError(t, err)
		require.Equal(t, rowColUsage+"\n", out)
	}
}

func TestRowColErrors(t *testing.T) {
	_, err := runApp(t, "rowcol", "--pattern", "diagonal", "2", "2")
	require.ErrorIs(t, err, matrix.ErrUnknownTraversal)

	_, err = runApp(t, "rowcol", "abc", "2")
	require.Error(t, err)

	_, err = runApp(t, "rowcol", "--tests", "0", "2", "2")
	require.Error(t, err)

	_, err = runApp(t, "rowcol", "4294967296", "4294967296")
	require.ErrorContains(t, err, "too many elements")

	_, err = runApp(t, "compare", "traversal", "4294967296", "4294967296")
	require.ErrorContains(t, err, "too many elements")
}

func TestMedianAge(t *testing.T) {
	for _, layout := range census.LayoutNames() {
		t.Run(layout, func(t *testing.T) {
			out, err := runApp(t, "median-age", "--population", "5000", "--layout", layout, "--seed", "5")
			require.NoError(t, err)
			require.Regexp(t, regexp.MustCompile(`^Calculation time = \d+\nMedian age = \d+\n$`), out)
		})
	}
}

func TestMedianAgeErrors(t *testing.T) {
	_, err := runApp(t, "median-age", "--population", "10", "--layout", "rows")
	require.ErrorIs(t, err, census.ErrUnknownLayout)

	_, err = runApp(t, "median-age", "--population", "0")
	require.Error(t, err)
}

func TestCompareTraversalJSON(t *testing.T) {
	out, err := runApp(t, "compare", "traversal", "--tests", "2", "--rounds", "3", "--seed", "1", "--json", "4", "4")
	require.NoError(t, err)

	var outcomes []experiment.Outcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcomes))
	require.Len(t, outcomes, 1)
	require.Equal(t, "traversal 4x4", outcomes[0].Experiment)
	require.Len(t, outcomes[0].Variants, 3)
	for _, v := range outcomes[0].Variants {
		require.Nil(t, v.Summary.Lo)
		require.Nil(t, v.Summary.Hi)
		require.NotEmpty(t, v.Summary.Warnings)
	}
}

func TestCompareLayout(t *testing.T) {
	out, err := runApp(t, "compare", "layout", "--population", "1000", "--tests", "2", "--rounds", "2", "--seed", "1")
	require.NoError(t, err)
	require.Contains(t, out, "### layout 1000 (2 datasets, 2 rounds)")
	require.Contains(t, out, "| records |")
	require.Contains(t, out, "| columns |")
}

func TestSuite(t *testing.T) {
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte(`
rounds: 2
tests: 2
seed: 11
traversals:
  - rows: 3
    cols: 7
layouts:
  - population: 500
`), 0644))

	out, err := runApp(t, "suite", plan)
	require.NoError(t, err)
	require.Contains(t, out, "## Benchmark Results")
	require.Contains(t, out, "### traversal 3x7")
	require.Contains(t, out, "### layout 500")

	_, err = runApp(t, "suite", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRecordListView(t *testing.T) {
	dir := t.TempDir()

	out, err := runApp(t, "--record", "--history-dir", dir, "rowcol", "--seed", "3", "2", "2", "col")
	require.NoError(t, err)

	entries, err := history.LoadEntries(zerolog.Nop(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	h := entries[0].History
	require.Equal(t, model.HistoryTypeRowCol, h.Type)
	require.Equal(t, int64(3), h.Seed)
	require.Len(t, h.Measurements, 1)
	require.Equal(t, "col", h.Measurements[0].Variant)
	require.Equal(t, 10, h.Measurements[0].Datasets)
	require.NotNil(t, h.Target)
	require.Len(t, h.Artifacts, 1)
	require.Equal(t, model.ArtifactTypeStdout, h.Artifacts[0].Type)

	stdout, err := os.ReadFile(filepath.Join(entries[0].FullPath, "stdout.txt"))
	require.NoError(t, err)
	require.Equal(t, out, string(stdout))

	listed, err := runApp(t, "--history-dir", dir, "list")
	require.NoError(t, err)
	require.Contains(t, listed, "=== History (1 total) ===")
	require.Contains(t, listed, "id="+h.ID[:8])
	require.Contains(t, listed, "rowcol/col:")

	listed, err = runApp(t, "--history-dir", dir, "list", "--type", "suite")
	require.NoError(t, err)
	require.Contains(t, listed, "No history entries found of type: suite")

	viewed, err := runApp(t, "--history-dir", dir, "view", h.ID[:6])
	require.NoError(t, err)
	require.Contains(t, viewed, "=== Run: "+h.ID[:8])
	require.Contains(t, viewed, "Average time (us):")
}

func TestRecordSkipsUsage(t *testing.T) {
	dir := t.TempDir()
	_, err := runApp(t, "--record", "--history-dir", dir, "rowcol")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "history"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRecordFailedRun(t *testing.T) {
	dir := t.TempDir()
	_, err := runApp(t, "--record", "--history-dir", dir, "median-age", "--layout", "nope", "--population", "10")
	require.Error(t, err)

	entries, err := history.LoadEntries(zerolog.Nop(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 1, entries[0].History.ExitCode)
}

func TestProfile(t *testing.T) {
	dir := t.TempDir()
	_, err := runApp(t, "--profile", "--history-dir", dir, "compare", "traversal", "--tests", "2", "--rounds", "2", "8", "8")
	require.NoError(t, err)

	entries, err := history.LoadEntries(zerolog.Nop(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var types []model.ArtifactType
	for _, a := range entries[0].History.Artifacts {
		types = append(types, a.Type)
	}
	require.Contains(t, types, model.ArtifactTypePprofProfile)
	require.FileExists(t, filepath.Join(entries[0].FullPath, cpuProfileFile))
}

func TestMetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layoutbench.prom")
	_, err := runApp(t, "--metrics-textfile", path, "rowcol", "--seed", "1", "2", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `layoutbench_average_microseconds{experiment="rowcol",variant="row"}`)
	require.Contains(t, string(data), `layoutbench_datasets_total{experiment="rowcol",variant="row"} 10`)
}
