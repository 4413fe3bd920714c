package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("log defaults = %s/%s, want info/json", cfg.LogLevel, cfg.LogFormat)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Error("no default CORS origins")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corex.yaml")
	data := []byte("port: 9090\nlog_level: debug\nlog_format: text\ncors_origins:\n  - https://ops.example.com\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "text" {
		t.Errorf("log settings = %s/%s, want debug/text", cfg.LogLevel, cfg.LogFormat)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://ops.example.com" {
		t.Errorf("cors origins = %v", cfg.CORSOrigins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COREX_PORT", "7001")
	t.Setenv("COREX_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7001 {
		t.Errorf("port = %d, want 7001", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %s, want warn", cfg.LogLevel)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"bad port", "port: -1\n"},
		{"bad level", "log_level: loud\n"},
		{"bad format", "log_format: xml\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "corex.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
