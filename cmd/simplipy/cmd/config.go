package cmd

import (
	"github.com/simplipy-lang/simplipy-go/internal/config"
)

var configPath string

// loadConfig resolves the --config flag (or ./.simplipy.yaml) into a
// config.Config, falling back to defaults when nothing is found.
func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefaultFile(".")
}
