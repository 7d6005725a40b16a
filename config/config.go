package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds everything main needs to wire the service together. Values
// come from an optional YAML file overridden by environment variables, so
// containerized deployments can run env-only.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty means the service
	// runs in mock-only mode.
	URL string `yaml:"url"`
}

// Load reads the config file at path (missing file is fine) and applies
// PORT and DATABASE_URL overrides from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		App: AppConfig{Name: "realty-api", Port: 8080},
	}

	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.App.Port = p
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
