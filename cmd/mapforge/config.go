package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configFileName      = ".mapforge.yaml"
	defaultWorkspaceDir = ".mapforge"
)

// Config is the optional .mapforge.yaml project file.
type Config struct {
	// Workspace is the directory holding schema and profile records.
	Workspace string `yaml:"workspace,omitempty"`

	// Blobs overrides where raw documents and example payloads are stored;
	// defaults to <workspace>/blobs.
	Blobs string `yaml:"blobs,omitempty"`

	// Generate holds code generation defaults.
	Generate GenerateConfig `yaml:"generate,omitempty"`

	// Match tunes the suggestion engine.
	Match MatchConfig `yaml:"match,omitempty"`
}

// MatchConfig configures suggestion scoring.
type MatchConfig struct {
	// Threshold is the minimum combined score (0-100) to keep a suggestion.
	Threshold float64 `yaml:"threshold,omitempty"`
}

// GenerateConfig configures the generate command.
type GenerateConfig struct {
	// Package is the emitted Go package name.
	Package string `yaml:"package,omitempty"`

	// Out is the output file path; stdout when empty.
	Out string `yaml:"out,omitempty"`
}

// loadConfigWithDir walks up from startDir looking for .mapforge.yaml and
// returns the parsed config plus the directory it was found in.
func loadConfigWithDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		cfg, err := loadConfig(dir)
		if err == nil {
			return cfg, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, startDir, fmt.Errorf("no %s found", configFileName)
		}

		dir = parent
	}
}

// loadConfig reads .mapforge.yaml from exactly one directory.
func loadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	return &cfg, nil
}
