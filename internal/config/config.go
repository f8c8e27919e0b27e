package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/munge/munge/internal/table"
)

// FileConfig is the on-disk YAML configuration shape for munge.
type FileConfig struct {
	Level          *int     `yaml:"level,omitempty"`
	Rules          []string `yaml:"rules,omitempty"`
	NoDefaultRules *bool    `yaml:"no_default_rules,omitempty"`
	MaxPlans       *int     `yaml:"max_plans,omitempty"`
	Threads        *int     `yaml:"threads,omitempty"`
	Enable         *string  `yaml:"enable,omitempty"`
	Disable        *string  `yaml:"disable,omitempty"`
	Include        *string  `yaml:"include,omitempty"`
	Exclude        *string  `yaml:"exclude,omitempty"`
	SkipEmpty      *bool    `yaml:"skip_empty,omitempty"`
	Sort           *bool    `yaml:"sort,omitempty"`
	NoColor        *bool    `yaml:"no_color,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in dir.
// It supports .munge.yml/.yaml and munge.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".munge.yml", ".munge.yaml", "munge.yml", "munge.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "munge", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// ParsedRules returns the extra substitution rules of the file.
func (fc FileConfig) ParsedRules() ([]table.Rule, error) {
	return table.ParseRules(fc.Rules)
}
