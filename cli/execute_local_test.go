package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChildEnv(t *testing.T) {
	environ := []string{
		"PATH=/usr/bin",
		"LAYOUTBENCH_RECORD=true",
		"LAYOUTBENCH_PROFILE=1",
		"LAYOUTBENCH_METRICS_TEXTFILE=/tmp/layoutbench.prom",
		"LAYOUTBENCH_HISTORY_DIR=/tmp/history",
		"LAYOUTBENCH_RECORDING=kept",
		"HOME=/root",
	}

	require.Equal(t, []string{
		"PATH=/usr/bin",
		"LAYOUTBENCH_HISTORY_DIR=/tmp/history",
		"LAYOUTBENCH_RECORDING=kept",
		"HOME=/root",
	}, childEnv(environ))
}
