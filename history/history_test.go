package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/perfgo/layoutbench/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeRun(t *testing.T, root, id string, ts time.Time) string {
	t.Helper()
	h := &model.History{ID: id, Type: model.HistoryTypeRowCol, Timestamp: ts}
	dir, err := RunDir(root, h)
	require.NoError(t, err)
	require.NoError(t, Write(dir, h))
	return dir
}

func TestRunDirName(t *testing.T) {
	root := t.TempDir()
	ts := time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC)
	dir, err := RunDir(root, &model.History{ID: "0123456789abcdef", Timestamp: ts})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "history", "20240305-101112-01234567"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestLoadEntriesNewestFirst(t *testing.T) {
	root := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeRun(t, root, "aaaa0000", base)
	writeRun(t, root, "bbbb0000", base.Add(time.Hour))
	writeRun(t, root, "cccc0000", base.Add(2*time.Hour))

	// A broken entry is skipped, not fatal.
	broken := filepath.Join(root, "history", "broken")
	require.NoError(t, os.MkdirAll(broken, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(broken, FileName), []byte("{"), 0644))

	entries, err := LoadEntries(zerolog.Nop(), root)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "cccc0000", entries[0].History.ID)
	require.Equal(t, "aaaa0000", entries[2].History.ID)
}

func TestLoadEntriesMissingRoot(t *testing.T) {
	_, err := LoadEntries(zerolog.Nop(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	entries := []Entry{
		{History: model.History{ID: "cafe0001"}},
		{History: model.History{ID: "beef0002"}},
		{History: model.History{ID: "dead0003"}},
		{History: model.History{ID: "12340004"}},
	}

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{name: "latest", arg: "0", want: "cafe0001"},
		{name: "second to last", arg: "-1", want: "beef0002"},
		{name: "third to last", arg: "-2", want: "dead0003"},
		{name: "out of range", arg: "-4", wantErr: true},
		{name: "positive index", arg: "5", wantErr: true},
		{name: "digit only id prefix", arg: "1234", want: "12340004"},
		{name: "id prefix", arg: "BEEF", want: "beef0002"},
		{name: "unknown id", arg: "ffff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Find(entries, tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, entry.History.ID)
		})
	}
}
