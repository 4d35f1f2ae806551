package lox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds purely host-level CLI knobs, loaded from an optional
// loxconfig.yaml next to the script being run (or the working directory for
// the REPL). None of these fields affect language semantics.
type Config struct {
	HistoryFile string `yaml:"history_file"`
	Color       bool   `yaml:"color"`
	Prompt      string `yaml:"prompt"`
}

// DefaultConfig mirrors the teacher CLI's own hardcoded defaults.
func DefaultConfig() *Config {
	return &Config{
		HistoryFile: ".lox_history",
		Color:       true,
		Prompt:      "[lox]>",
	}
}

// LoadConfig reads loxconfig.yaml from dir, if present, merging it over
// DefaultConfig. A missing file is not an error; a malformed one is.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, "loxconfig.yaml")
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
