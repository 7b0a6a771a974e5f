// Package config loads the small set of host-tunable knobs spec.md's
// "Resource lifecycle" section leaves to a host: how many steps a session
// may take before a caller-enforced budget cuts it off, how deep nested
// calls may recurse, and the CLI's default output format. Grounded on
// goccy/go-yaml, already part of the dependency stack.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the full set of tunable knobs, loadable from a YAML file or
// used as-is via Default().
type Config struct {
	// MaxSteps bounds how many Step calls a single session may make
	// before the CLI/session manager refuses to continue (0 = unbounded).
	MaxSteps int `yaml:"max_steps"`

	// MaxCallDepth bounds the continuation stack's depth (0 = unbounded).
	// The core itself has no notion of a depth limit, spec.md's §4.8
	// CallAssign pushes unconditionally, so this is enforced by the
	// session layer, not the stepper.
	MaxCallDepth int `yaml:"max_call_depth"`

	// OutputFormat is the CLI's default rendering for a snapshot: "text"
	// (human-readable) or "json" (the wire schema verbatim).
	OutputFormat string `yaml:"output_format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		MaxSteps:     100_000,
		MaxCallDepth: 1_000,
		OutputFormat: "text",
	}
}

// Load reads a YAML config file at path, falling back to Default() for any
// field the file doesn't set. A missing file is not an error: the caller
// gets defaults back.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefaultFile looks for .simplipy.yaml in dir and loads it, returning
// defaults untouched if it isn't there.
func LoadDefaultFile(dir string) (Config, error) {
	return Load(dir + "/.simplipy.yaml")
}
