package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Database struct {
		// Driver is "sqlite3" (default) or "postgres".
		Driver string `yaml:"driver"`
		// DSN is the sqlite file path or the postgres connection string.
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	AI struct {
		Enabled bool   `yaml:"enabled"`
		Model   string `yaml:"model"`
	} `yaml:"ai"`

	Auth struct {
		// JWTSecret may also come from the JWT_SECRET environment variable,
		// which takes precedence over the file value.
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads the configuration file and applies defaults and
// environment overrides
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if s := os.Getenv("JWT_SECRET"); s != "" {
		cfg.Auth.JWTSecret = s
	}
	return &cfg, nil
}

// Default returns a configuration suitable for local development
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9090
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "hospguardian.db"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4-turbo-preview"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
