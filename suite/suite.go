// Package suite loads experiment plans: a list of matrix shapes and
// population sizes that are compared in one go.
package suite

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a plan fails validation.
var ErrInvalidConfig = errors.New("invalid suite config")

// Config is an experiment plan.
//
// Example:
//
//	rounds: 5
//	tests: 10
//	seed: 42
//	traversals:
//	  - rows: 1000
//	    cols: 1000
//	  - rows: 10
//	    cols: 100000
//	layouts:
//	  - population: 1000000
type Config struct {
	// Rounds is the number of timed passes per variant.
	Rounds int `yaml:"rounds" json:"rounds"`
	// Tests is the number of datasets per variant.
	Tests int `yaml:"tests" json:"tests"`
	// Seed of the dataset generator, 0 picks a time based seed.
	Seed int64 `yaml:"seed" json:"seed"`

	Traversals []TraversalConfig `yaml:"traversals" json:"traversals"`
	Layouts    []LayoutConfig    `yaml:"layouts" json:"layouts"`
}

// TraversalConfig is one matrix shape.
type TraversalConfig struct {
	Rows int `yaml:"rows" json:"rows"`
	Cols int `yaml:"cols" json:"cols"`
}

// LayoutConfig is one population size.
type LayoutConfig struct {
	Population int `yaml:"population" json:"population"`
}

// DefaultConfig returns the settings used for anything a plan leaves out.
func DefaultConfig() Config {
	return Config{
		Rounds: 6,
		Tests:  10,
	}
}

// Load reads the plan at path on top of DefaultConfig, applies
// LAYOUTBENCH_SUITE_* environment overrides and validates the result.
func Load(path string) (Config, error) {
	config := DefaultConfig()

	if err := loadFile(path, &config); err != nil {
		return config, fmt.Errorf("load suite file: %w", err)
	}

	loadFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse suite (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}

	return nil
}

func loadFromEnv(config *Config) {
	if v := os.Getenv("LAYOUTBENCH_SUITE_ROUNDS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Rounds = i
		}
	}
	if v := os.Getenv("LAYOUTBENCH_SUITE_TESTS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Tests = i
		}
	}
	if v := os.Getenv("LAYOUTBENCH_SUITE_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Seed = i
		}
	}
}

// Validate checks that the plan describes at least one runnable experiment.
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be >= 1", ErrInvalidConfig)
	}
	if c.Tests < 1 {
		return fmt.Errorf("%w: tests must be >= 1", ErrInvalidConfig)
	}
	if len(c.Traversals) == 0 && len(c.Layouts) == 0 {
		return fmt.Errorf("%w: no traversals or layouts to run", ErrInvalidConfig)
	}
	for i, t := range c.Traversals {
		if t.Rows < 1 || t.Cols < 1 {
			return fmt.Errorf("%w: traversals[%d]: rows and cols must be >= 1, got %dx%d", ErrInvalidConfig, i, t.Rows, t.Cols)
		}
		if t.Rows > math.MaxInt/t.Cols {
			return fmt.Errorf("%w: traversals[%d]: %dx%d overflows", ErrInvalidConfig, i, t.Rows, t.Cols)
		}
	}
	for i, l := range c.Layouts {
		if l.Population < 1 {
			return fmt.Errorf("%w: layouts[%d]: population must be >= 1", ErrInvalidConfig, i)
		}
	}
	return nil
}
