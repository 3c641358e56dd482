// Package config loads optional YAML configuration for the CLI. Flags beat
// the repo-local file, which beats the global file; nil fields mean "unset".
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape.
type FileConfig struct {
	Patterns      *string  `yaml:"patterns"`
	Include       *string  `yaml:"include"`
	Exclude       *string  `yaml:"exclude"`
	MaxBytes      *int64   `yaml:"max_bytes"`
	Threads       *int     `yaml:"threads"`
	FailOn        *string  `yaml:"fail_on"`
	NoColor       *bool    `yaml:"no_color"`
	Reveal        *int     `yaml:"reveal_length"`
	MediumEntropy *float64 `yaml:"medium_entropy"`
	LowEntropy    *float64 `yaml:"low_entropy"`

	// Deep scanning config mirrors CLI flags.
	Archives        *bool  `yaml:"archives"`
	Containers      *bool  `yaml:"containers"`
	MaxArchiveBytes *int64 `yaml:"max_archive_bytes"`
	MaxEntries      *int   `yaml:"max_entries"`
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

// LoadLocal searches for a repo-local config file in the given root.
// It supports .canary.yml/.yaml and canary.yml/.yaml, dotfiles first.
func LoadLocal(root string) (FileConfig, error) {
	for _, name := range []string{".canary.yml", ".canary.yaml", "canary.yml", "canary.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, errors.New("no local config")
}

// LoadGlobal loads the global config from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, errors.New("no config dir")
	}
	p := filepath.Join(base, "canary", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, errors.New("no global config")
}
