package main

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when no .partiqlparse.yaml is found while
// walking up from a starting directory.
var ErrConfigNotFound = errors.New("partiqlparse: no .partiqlparse.yaml found")

// Config is the .partiqlparse.yaml file shape. CLI flags override any value
// set here; an absent config file is not an error (the zero Config is a
// valid, fully-defaulted configuration).
type Config struct {
	// AggregateFunctions overrides the default aggregate-function set
	// (COUNT, SUM, MIN, MAX, AVG).
	AggregateFunctions []string `yaml:"aggregate_functions,omitempty"`
	// Verbose enables development-mode (human-readable, debug-level) logging.
	Verbose bool `yaml:"verbose,omitempty"`
}

// DefaultConfigNames are the filenames searched for, most specific first.
var DefaultConfigNames = []string{".partiqlparse.yaml", ".partiqlparse.yml"}

// LoadConfig finds and loads the nearest config file walking up from dir. A
// missing config file is reported via ErrConfigNotFound so callers can fall
// back to defaults instead of failing.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting at dir and walking up to
// the filesystem root.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for d := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(d, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", ErrConfigNotFound
		}
		d = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
