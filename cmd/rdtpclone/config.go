package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML config file. Flags override it.
type fileConfig struct {
	// Port is the serial device, e.g. /dev/ttyUSB0 or COM5
	Port string `yaml:"port"`

	// Model is the radio model name (HA1G, HA1UV)
	Model string `yaml:"model"`

	// Verbose enables debug logging
	Verbose bool `yaml:"verbose"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
