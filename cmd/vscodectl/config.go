package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds connection settings for vscodectl. All fields are optional;
// flags override file values.
type Config struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DefaultConfig returns the built-in defaults, matching the extension's
// default listen address.
func DefaultConfig() *Config {
	return &Config{
		Host:           "localhost",
		Port:           3000,
		TimeoutSeconds: 10,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config %s: invalid port %d", path, cfg.Port)
	}

	return cfg, nil
}

// URL returns the WebSocket address for the configured host and port.
func (c *Config) URL() string {
	return fmt.Sprintf("ws://%s:%d", c.Host, c.Port)
}

// Timeout returns the per-command timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
