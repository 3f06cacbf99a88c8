package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "webmc.yaml"

// Load parses args and loads configuration with priority: defaults < file < flags.
// It returns the remaining positional arguments.
func Load(args []string) (*Config, []string, error) {
	f, err := parseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := Default()

	configPath := f.config
	if configPath == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configPath = DefaultFile
		}
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	f.apply(cfg)
	cfg.clamp()

	return cfg, f.set.Args(), nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
