// Package config loads a YAML batch-run descriptor naming scripts to run
// and the host variables to link into each before running it.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// VarSpec describes one host variable to link before running a script.
// Value is decoded loosely (YAML scalar) and converted per Type when the
// runner links it.
type VarSpec struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// ScriptSpec names one script to run and the variables to link into it.
type ScriptSpec struct {
	Path string             `yaml:"path"`
	Vars map[string]VarSpec `yaml:"vars"`
	Note string             `yaml:"note"`
}

// Project is the root of a batch-run descriptor.
type Project struct {
	Scripts []ScriptSpec `yaml:"scripts"`
}

// Load reads and parses the YAML descriptor at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &p, nil
}
