// Package config loads service configuration from config.yaml and
// environment variables, env vars taking priority.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration.
type Config struct {
	Amadeus AmadeusConfig `yaml:"amadeus"`
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}

// AmadeusConfig holds the upstream API credentials and base URL.
type AmadeusConfig struct {
	ClientID     string `yaml:"client_id" env:"AMADEUS_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"AMADEUS_CLIENT_SECRET"`
	BaseURL      string `yaml:"base_url" env:"AMADEUS_BASE_URL" env-default:"https://api.amadeus.com"`
}

// SearchConfig controls the live/mock policy of the orchestrator.
type SearchConfig struct {
	UseRealAPI     bool   `yaml:"use_real_api" env:"USE_REAL_API" env-default:"false"`
	FallbackToMock bool   `yaml:"fallback_to_mock" env:"API_FALLBACK_TO_MOCK" env-default:"true"`
	Currency       string `yaml:"currency" env:"FLIGHT_CURRENCY" env-default:"USD"`
	MaxResults     int    `yaml:"max_results" env:"FLIGHT_MAX_RESULTS" env-default:"5"`
}

// CacheConfig controls the optional local sqlite cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true"`
	Path       string `yaml:"path" env:"CACHE_PATH" env-default:"flight_cache.db"`
	TTLMinutes int    `yaml:"ttl_minutes" env:"CACHE_TTL_MINUTES" env-default:"60"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// LiveEnabled reports whether the live upstream should be attempted at
// all: the flag must be on and credentials must be present.
func (c *Config) LiveEnabled() bool {
	return c.Search.UseRealAPI && c.Amadeus.ClientID != "" && c.Amadeus.ClientSecret != ""
}

// Load reads configuration from config.yaml and environment variables.
// Priority: Env Vars > Config File > Defaults.
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
