package cli

// This file contains Git integration utilities for retrieving
// repository information.

import (
	"fmt"
	"os/exec"
	"strings"
)

func gitOutput(args ...string) (string, error) {
	output, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// getGitInfo returns commit and branch of the working directory. A commit
// with uncommitted changes is suffixed with "-dirty".
func (a *App) getGitInfo() (commit, branch string, err error) {
	commit, err = gitOutput("rev-parse", "HEAD")
	if err != nil {
		return "", "", fmt.Errorf("failed to get git commit: %w", err)
	}

	branch, err = gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", "", fmt.Errorf("failed to get git branch: %w", err)
	}

	if status, err := gitOutput("status", "--porcelain", "--untracked-files=no"); err == nil && status != "" {
		commit += "-dirty"
	}

	return commit, branch, nil
}
