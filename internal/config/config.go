package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	Port        int      `yaml:"port"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:      8080,
		LogLevel:  "info",
		LogFormat: "json",
		CORSOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
	}
}

// Load reads an optional YAML file, applies COREX_* environment
// overrides, and validates the result. An empty path yields defaults
// plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COREX_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("COREX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("COREX_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log_format: %s (must be json or text)", cfg.LogFormat)
	}
	return nil
}
