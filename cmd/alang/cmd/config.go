package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// fileConfig is the shape of an optional alang.yaml config file: defaults
// applied before command-line flags are parsed, so a flag always wins.
type fileConfig struct {
	Verbose bool     `yaml:"verbose"`
	Args    []string `yaml:"args"`
}

// loadFileConfig reads path if it exists and returns its parsed contents; a
// missing file is not an error, since the config file itself is optional.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, err
	}
	cfg := &fileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
