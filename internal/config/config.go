// Package config loads the YAML configuration for the desceditor CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures the host server and the storage backend the CLI
// commands operate on.
type Config struct {
	// Listen is the host API listen address.
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// StaticDir, when set, is served at the root path (editor UI bundle).
	StaticDir string `yaml:"static_dir"`

	// Session fixes the session ID; empty means generate one at startup.
	Session string `yaml:"session"`

	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects and parameterizes the state storage backend.
type StoreConfig struct {
	// Backend is one of memory, file, redis.
	Backend string `yaml:"backend"`

	// Path is the base directory for the file backend.
	Path string `yaml:"path"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig parameterizes the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (c *Config) defaults() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8787"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = "127.0.0.1:6379"
	}
}

// Load reads the config file at path. An empty path yields pure defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.defaults()

	switch cfg.Store.Backend {
	case "memory", "file", "redis":
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return cfg, nil
}
