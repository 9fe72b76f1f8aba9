package history

// This file contains shared history utilities for storing, loading and
// parsing run history.

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/perfgo/layoutbench/model"
	"github.com/rs/zerolog"
)

// DirName is the default history directory name.
const DirName = ".layoutbench"

// FileName is the metadata file written into every run directory.
const FileName = "history.json"

type Entry struct {
	History  model.History
	FullPath string
}

// DefaultRoot returns the history directory: below the git repository root
// when inside a repository, below the working directory otherwise.
func DefaultRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	if output, err := cmd.Output(); err == nil {
		return filepath.Join(strings.TrimSpace(string(output)), DirName), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(cwd, DirName), nil
}

// RunDir creates and returns <root>/history/<timestamp>-<id>.
func RunDir(root string, h *model.History) (string, error) {
	shortID := h.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	runName := fmt.Sprintf("%s-%s", h.Timestamp.Format("20060102-150405"), shortID)
	runDir := filepath.Join(root, "history", runName)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return runDir, nil
}

// Write stores the metadata of a run in runDir.
func Write(runDir string, h *model.History) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(filepath.Join(runDir, FileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write history metadata: %w", err)
	}
	return nil
}

// LoadEntries loads all history entries below root, newest first.
func LoadEntries(logger zerolog.Logger, root string) ([]Entry, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, fmt.Errorf("no recorded runs found in %s", root)
	}

	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			historyPath := filepath.Join(path, FileName)
			if _, err := os.Stat(historyPath); err == nil {
				history, err := parseHistoryJSON(historyPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", historyPath).Msg("Failed to parse history.json")
					return nil
				}

				entries = append(entries, Entry{
					History:  history,
					FullPath: path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk history directory: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].History.Timestamp.After(entries[j].History.Timestamp)
	})

	return entries, nil
}

// Find selects an entry from entries sorted newest first. arg is either
// 0 or a negative index counting back from the newest run, or a hex ID prefix.
func Find(entries []Entry, arg string) (*Entry, error) {
	parsed, err := strconv.ParseInt(arg, 10, 64)
	if err == nil && parsed <= 0 {
		index := int(-parsed)
		if index >= len(entries) {
			return nil, fmt.Errorf("index %s out of range (only %d history entries)", arg, len(entries))
		}
		return &entries[index], nil
	}

	// Positive numbers may still be an ID prefix made of digits only.
	hexID := strings.ToLower(arg)
	for i := range entries {
		if strings.HasPrefix(strings.ToLower(entries[i].History.ID), hexID) {
			return &entries[i], nil
		}
	}

	if err == nil {
		return nil, fmt.Errorf("invalid index: %s (use 0 for last, -1 for second-to-last, -2 for third-to-last, etc.)", arg)
	}
	return nil, fmt.Errorf("no history entry found matching ID: %s", arg)
}

// parseHistoryJSON parses a history.json file.
func parseHistoryJSON(historyPath string) (model.History, error) {
	data, err := os.ReadFile(historyPath)
	if err != nil {
		return model.History{}, err
	}

	var history model.History
	if err := json.Unmarshal(data, &history); err != nil {
		return model.History{}, err
	}

	return history, nil
}
