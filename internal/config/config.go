// Package config loads schedconf's local configuration files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the schedconf runtime settings file (schedconf.yaml).
type Settings struct {
	Version int `yaml:"version"`
	Bus     struct {
		Kind   string `yaml:"kind"` // mqtt | nats | synthetic
		URL    string `yaml:"url"`
		Prefix string `yaml:"prefix"`
	} `yaml:"bus"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	ScienceFile    string `yaml:"science_file"`
	Events         struct {
		Postgres bool `yaml:"postgres"`
	} `yaml:"events"`
	Fields struct {
		Resolve bool   `yaml:"resolve"`
		DSN     string `yaml:"dsn"` // empty falls back to PG* env
	} `yaml:"fields"`
}

// Timeout returns the acquisition timeout, defaulting to 180s if not set.
func (s *Settings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 180 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// BusKind returns the configured bus adapter, defaulting to mqtt.
func (s *Settings) BusKind() string {
	if s.Bus.Kind == "" {
		return "mqtt"
	}
	return s.Bus.Kind
}

// LoadSettings reads and validates the settings file.
func LoadSettings(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Settings
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported schedconf.yaml version: %d", cfg.Version)
	}

	return &cfg, nil
}
