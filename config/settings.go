// Package config provides the server configuration: where data lives, how
// the HTTP listener runs, and the typo tolerance defaults applied to
// queries that do not override them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings contains all configuration options for the company search server.
type Settings struct {
	Port    int    `json:"port" yaml:"port"`         // HTTP listen port
	DataDir string `json:"data_dir" yaml:"data_dir"` // directory for persisted index data and the ID registry

	// RulesFile optionally overrides the built-in synonym tables and
	// stopword lists. Empty means built-ins only.
	RulesFile string `json:"rules_file" yaml:"rules_file"`

	// IDListPath optionally points at a file receiving one company ID per
	// indexed document. Empty disables the side channel.
	IDListPath string `json:"id_list_path" yaml:"id_list_path"`

	MaxJobWorkers int `json:"max_job_workers" yaml:"max_job_workers"` // concurrent background jobs

	MinWordSizeFor1Typo  int `json:"min_word_size_for_1_typo" yaml:"min_word_size_for_1_typo"`
	MinWordSizeFor2Typos int `json:"min_word_size_for_2_typos" yaml:"min_word_size_for_2_typos"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	s := Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills in zero-valued fields.
func (s *Settings) ApplyDefaults() {
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.DataDir == "" {
		s.DataDir = "./data"
	}
	if s.MaxJobWorkers == 0 {
		s.MaxJobWorkers = 4
	}
	if s.MinWordSizeFor1Typo == 0 {
		s.MinWordSizeFor1Typo = 4
	}
	if s.MinWordSizeFor2Typos == 0 {
		s.MinWordSizeFor2Typos = 7
	}
	if s.MinWordSizeFor2Typos < s.MinWordSizeFor1Typo {
		s.MinWordSizeFor2Typos = s.MinWordSizeFor1Typo + 1
	}
}

// Validate reports configuration problems. Called after ApplyDefaults.
func (s *Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port %d is out of range", s.Port)
	}
	if s.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if s.MaxJobWorkers < 1 {
		return fmt.Errorf("max_job_workers must be at least 1")
	}
	if s.MinWordSizeFor1Typo < 1 || s.MinWordSizeFor2Typos < s.MinWordSizeFor1Typo {
		return fmt.Errorf("invalid typo tolerance thresholds: %d and %d",
			s.MinWordSizeFor1Typo, s.MinWordSizeFor2Typos)
	}
	return nil
}

// Load reads settings from a YAML file and applies defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
