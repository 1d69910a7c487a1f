package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/obs-scheduling/schedconf/internal/proposal"
)

// Science is the science proposal definitions file.
type Science struct {
	Version  int                 `yaml:"version"`
	General  []proposal.General  `yaml:"general"`
	Sequence []proposal.Sequence `yaml:"sequence"`
}

// LoadScience reads and validates a science proposal definitions file.
func LoadScience(path string) (*Science, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sci Science
	if err := yaml.Unmarshal(b, &sci); err != nil {
		return nil, err
	}

	if sci.Version != 1 {
		return nil, fmt.Errorf("unsupported science file version: %d", sci.Version)
	}

	return &sci, nil
}
