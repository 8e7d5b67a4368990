package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from amrfix.yml.
type ProjectConfig struct {
	OutputDir        string   `yaml:"outputDir,omitempty"`
	Columns          []string `yaml:"columns,omitempty"`
	Workers          int      `yaml:"workers,omitempty"`
	Verbose          bool     `yaml:"verbose,omitempty"`
	NormalizeUnicode *bool    `yaml:"normalizeUnicode,omitempty"`
	ShuffleSeed      *int64   `yaml:"shuffleSeed,omitempty"`
}

// Load attempts to read amrfix.yml or amrfix.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"amrfix.yml", "amrfix.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
