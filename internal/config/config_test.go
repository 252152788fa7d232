package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/FocuswithJustin/ecoji/core/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Version != 1 || cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
	}{
		{
			name:    "full",
			content: "version: 2\nlog_level: debug\nlog_format: json\n",
			want:    Config{Version: 2, LogLevel: "debug", LogFormat: "json"},
		},
		{
			name:    "partial keeps defaults",
			content: "version: 2\n",
			want:    Config{Version: 2, LogLevel: "warn", LogFormat: "text"},
		},
		{
			name:    "empty file",
			content: "",
			want:    *DefaultConfig(),
		},
		{
			name:    "comments only",
			content: "# nothing here\n",
			want:    *DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("Load() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unsupported version", "version: 3\n", "version"},
		{"bad level", "log_level: loud\n", "log_level"},
		{"bad format", "log_format: xml\n", "log_format"},
		{"unknown key", "alphabet: 2\n", ""},
		{"malformed yaml", "version: [\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, apperrors.ErrInvalidInput) && !errors.Is(err, apperrors.ErrUnsupported) {
				t.Errorf("Load() error = %v, want invalid input", err)
			}
			if tt.field != "" {
				var valErr *apperrors.ValidationError
				if !errors.As(err, &valErr) || valErr.Field != tt.field {
					t.Errorf("Load() error = %v, want ValidationError for %s", err, tt.field)
				}
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	var ioErr *apperrors.IOError
	if _, err := Load(missing); !errors.As(err, &ioErr) {
		t.Errorf("Load() error = %v, want IOError", err)
	}

	cfg, err := LoadOptional(missing)
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("LoadOptional() = %+v, want defaults", *cfg)
	}

	if cfg, err := LoadOptional(""); err != nil || *cfg != *DefaultConfig() {
		t.Errorf("LoadOptional(\"\") = %+v, %v", cfg, err)
	}

	// An existing but invalid file is still an error.
	if _, err := LoadOptional(writeConfig(t, "version: 9\n")); err == nil {
		t.Error("LoadOptional() accepted an invalid file")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := &Config{Version: 2, LogLevel: "info", LogFormat: "json"}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "log_level: info") {
		t.Errorf("Marshal() = %q", data)
	}
	back, err := Parse("inline", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if *back != *cfg {
		t.Errorf("Parse(Marshal()) = %+v, want %+v", *back, *cfg)
	}
}
