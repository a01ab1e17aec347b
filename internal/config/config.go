package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		SecretKey       string `yaml:"secret_key"`
		TokenTTLMinutes int64  `yaml:"token_ttl_minutes"`
	} `yaml:"auth"`
	Redis struct {
		Enabled               bool   `yaml:"enabled"`
		Addr                  string `yaml:"addr"`
		LeaderboardTTLSeconds int64  `yaml:"leaderboard_ttl_seconds"`
	} `yaml:"redis"`
}

// LoadConfig reads configuration from the specified YAML file and applies
// environment variable overrides on top of it.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyEnvOverrides(config)

	if config.Auth.TokenTTLMinutes <= 0 {
		config.Auth.TokenTTLMinutes = 60
	}
	if config.Auth.SecretKey == "" {
		return nil, fmt.Errorf("auth.secret_key must not be empty")
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		config.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		config.Auth.SecretKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}
}
