package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// projectConfig is the optional `vane.yaml` project file read from the
// working directory (spec §1: the host harness is out of scope, but a real
// binary still wants a project file the way a comparable compiler CLI's config loader does). Grounded on
// internal/ext's config loader pattern: yaml.v3 struct tags, unmarshaled
// with defaults left zero-valued when the file is absent.
type projectConfig struct {
	Entry   string `yaml:"entry"`
	PrintIR bool   `yaml:"print_ir"`
	Color   *bool  `yaml:"color"`
	Verbose bool   `yaml:"verbose"`
}

// loadProjectConfig reads vane.yaml from the working directory if present.
// A missing file is not an error — it just means every field stays at its
// zero value.
func loadProjectConfig(path string) (*projectConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &projectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
