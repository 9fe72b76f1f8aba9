package model

import "time"

// HistoryType represents the type of history entry
type HistoryType string

const (
	HistoryTypeRowCol    HistoryType = "rowcol"
	HistoryTypeMedianAge HistoryType = "median-age"
	HistoryTypeCompare   HistoryType = "compare"
	HistoryTypeSuite     HistoryType = "suite"
)

// History represents a single layoutbench execution
type History struct {
	// Unique ID for this execution (16 random bytes, hex encoded)
	ID string `json:"id"`
	// Type of execution
	Type HistoryType `json:"type"`
	// Timestamp when the execution started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Shell-quoted command line to reproduce the run
	Command string `json:"command"`
	// Working directory where the command was run
	WorkDir string `json:"workdir"`
	// Exit code of the execution
	ExitCode int `json:"exit_code"`
	// Duration of execution
	Duration time.Duration `json:"duration"`
	// Seed of the random generator used for the datasets
	Seed int64 `json:"seed,omitempty"`
	// Git information
	Git *Git `json:"git,omitempty"`
	// Target execution environment
	Target *Target `json:"target,omitempty"`
	// Artifacts generated during this run
	Artifacts []Artifact `json:"artifacts,omitempty"`
	// Perf options used (if any)
	Perf *Perf `json:"perf,omitempty"`
	// Timings taken by the run
	Measurements []Measurement `json:"measurements,omitempty"`
	// Median age result (median-age runs only)
	Median *MedianResult `json:"median,omitempty"`
}

// Git contains git repository information
type Git struct {
	// Git commit hash at time of execution
	Commit string `json:"commit,omitempty"`
	// Git branch at time of execution
	Branch string `json:"branch,omitempty"`
}

// Target contains information about the execution environment
type Target struct {
	OS        string `json:"os,omitempty"`
	Arch      string `json:"arch,omitempty"`
	CPUs      int    `json:"cpus,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Perf contains performance counter options that were used
type Perf struct {
	Stat *PerfStat `json:"stat,omitempty"`
}

// PerfStat contains perf stat options that were used
type PerfStat struct {
	// Events to measure
	Events []string `json:"events,omitempty"`
	// Whether detailed statistics were enabled
	Detail bool `json:"detail,omitempty"`
}

// Measurement is one timed variant of an experiment.
type Measurement struct {
	// Experiment name, e.g. "rowcol" or "traversal 1000x1000"
	Experiment string `json:"experiment"`
	// Variant name, e.g. "row", "col", "records", "columns"
	Variant string `json:"variant"`
	// Average microseconds per dataset (center of all rounds for compare runs)
	AverageMicros float64 `json:"average_us"`
	// Datasets timed per round
	Datasets int `json:"datasets"`
	// Per-round averages (compare runs only)
	Samples []float64 `json:"samples_us,omitempty"`
	// Accumulated computation output, kept as text
	Observed string `json:"observed,omitempty"`
}

// MedianResult is the outcome of a median-age run.
type MedianResult struct {
	Layout            string `json:"layout"`
	Population        int    `json:"population"`
	MedianAge         int    `json:"median_age"`
	CalculationMicros int64  `json:"calculation_us"`
}

// ArtifactType identifies the type of artifact
type ArtifactType uint8

const (
	ArtifactTypePprofProfile ArtifactType = iota
	ArtifactTypePerfStat
	ArtifactTypeStdout
	ArtifactTypeStderr
	ArtifactTypeReport
)

// String returns the short display name of the artifact type.
func (t ArtifactType) String() string {
	switch t {
	case ArtifactTypePprofProfile:
		return "profile"
	case ArtifactTypePerfStat:
		return "perf-stat"
	case ArtifactTypeStdout:
		return "stdout"
	case ArtifactTypeStderr:
		return "stderr"
	case ArtifactTypeReport:
		return "report"
	default:
		return "unknown"
	}
}

// Artifact represents a file generated during execution
type Artifact struct {
	Type ArtifactType `json:"type"`
	Size uint64       `json:"size"`
	File string       `json:"file"` // relative to run dir
}
