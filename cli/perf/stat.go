package perf

// stat.go contains utilities for building perf stat commands.

import (
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/urfave/cli/v2"
)

// StatOptions contains options for perf stat command.
type StatOptions struct {
	Events []string // Events to measure
	Binary string   // Binary to execute
	Args   []string // Arguments for the binary
	Detail bool     // Add detailed statistics (-d flag)
}

// BuildStatArgs builds perf stat command arguments.
func BuildStatArgs(opts StatOptions) []string {
	args := []string{"stat"}

	// Add detailed statistics flag
	if opts.Detail {
		args = append(args, "-d")
	}

	for _, event := range opts.Events {
		if event = strings.TrimSpace(event); event != "" {
			args = append(args, "-e", event)
		}
	}

	if opts.Binary != "" {
		args = append(args, "--", opts.Binary)
		args = append(args, opts.Args...)
	}

	return args
}

// BuildStatCommand returns the perf stat invocation as a shell-quoted string
// for logs and history.
func BuildStatCommand(opts StatOptions) string {
	args := BuildStatArgs(opts)
	return shellescape.QuoteCommand(append([]string{"perf"}, args...))
}

// StatEventFlag returns the event flag for perf stat (multiple events).
func StatEventFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "event",
		Aliases: []string{"e"},
		Usage:   "Event to measure under --perf-stat (can be specified multiple times, e.g. L1-dcache-load-misses)",
	}
}

// StatDetailFlag returns the detail flag for perf stat.
func StatDetailFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "detail",
		Usage: "Add detailed statistics (-d flag to perf)",
		Value: true,
	}
}
