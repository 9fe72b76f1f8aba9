package cli

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: "1000", want: 1000},
		{arg: "0", wantErr: true},
		{arg: "-5", wantErr: true},
		{arg: "ten", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseDimension("num_rows", tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		name     string
		rows     string
		cols     string
		wantRows int
		wantCols int
		wantErr  bool
	}{
		{name: "square", rows: "4", cols: "4", wantRows: 4, wantCols: 4},
		{name: "single row", rows: "1", cols: "1000", wantRows: 1, wantCols: 1000},
		{name: "bad cols", rows: "4", cols: "0", wantErr: true},
		{name: "overflow", rows: "4294967296", cols: "4294967296", wantErr: true},
		{name: "max rows", rows: "9223372036854775807", cols: "2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols, err := parseShape(tt.rows, tt.cols)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantRows, rows)
			require.Equal(t, tt.wantCols, cols)
		})
	}
}

func TestFormatAverage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 12, want: "12"},
		{in: 1234.5678, want: "1234.57"},
		{in: 0.125, want: "0.125"},
		{in: 1234567, want: "1.23457e+06"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, formatAverage(tt.in))
		})
	}
}

func TestParseAverage(t *testing.T) {
	v, err := parseAverage("4294967290\nAverage time (us): 1234.57\n")
	require.NoError(t, err)
	require.Equal(t, 1234.57, v)

	_, err = parseAverage("4294967290\n")
	require.Error(t, err)

	_, err = parseAverage("Average time (us): fast\n")
	require.Error(t, err)
}

func TestResolveSeed(t *testing.T) {
	a := newApp(zerolog.Nop(), nil)
	r, err := a.newRun("rowcol", time.Now())
	require.NoError(t, err)

	require.Equal(t, int64(42), a.resolveSeed(42, r))
	require.Equal(t, int64(42), r.history.Seed)

	seed := a.resolveSeed(0, r)
	require.NotZero(t, seed)
	require.Equal(t, seed, r.history.Seed)
}
