// Package config loads the optional ecoji configuration file.
//
// Values are resolved in order: built-in defaults, then the YAML file, then
// environment variables and command-line flags applied by the CLI.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/ecoji/core/alphabet"
	"github.com/FocuswithJustin/ecoji/core/errors"
	"github.com/FocuswithJustin/ecoji/internal/logging"
)

// Config holds the settings that can be stored in the configuration file.
type Config struct {
	// Version is the alphabet version used for encoding and as the primary
	// decoding alphabet.
	Version int `yaml:"version"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is json or text.
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// DefaultPath returns the per-user configuration file location, or "" if
// the user configuration directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ecoji", "config.yaml")
}

// Load reads and validates the configuration file at path. Fields absent from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return Parse(path, data)
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Parse decodes YAML configuration data. Unknown keys are rejected.
func Parse(name string, data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, &errors.ParseError{Format: "config", Path: name, Message: err.Error(), Err: errors.ErrInvalidInput}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	if _, err := alphabet.Lookup(c.Version); err != nil {
		return &errors.ValidationError{
			Field:   "version",
			Value:   fmt.Sprintf("%d", c.Version),
			Message: "must be 1 or 2",
			Err:     err,
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &errors.ValidationError{Field: "log_level", Value: c.LogLevel, Message: err.Error()}
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return &errors.ValidationError{Field: "log_format", Value: c.LogFormat, Message: err.Error()}
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
