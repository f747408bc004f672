// Package config loads the bot's runtime configuration. The comedogen policy
// itself is not configurable; only orchestration concerns live here.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comedolab/comedo/pkg/comedo/internalerr"
)

// Telegram configures the Bot API client.
type Telegram struct {
	Token          string `yaml:"token"`
	PollTimeoutSec int    `yaml:"poll_timeout_sec"`
}

// Lookup configures the external ingredient-lookup client.
type Lookup struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

// Cache configures the pending-explanation cache.
type Cache struct {
	Backend    string `yaml:"backend"` // "memory" or "sqlite"
	Path       string `yaml:"path"`    // sqlite file, ignored for memory
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// Config is the full bot configuration.
type Config struct {
	Telegram Telegram `yaml:"telegram"`
	Lookup   Lookup   `yaml:"lookup"`
	Cache    Cache    `yaml:"cache"`
}

// Load reads a YAML configuration file, fills defaults and env fallbacks
// (TELEGRAM_BOT_TOKEN, OPENAI_API_KEY), and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Telegram.Token == "" {
		c.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.PollTimeoutSec == 0 {
		c.Telegram.PollTimeoutSec = 50
	}
	if c.Lookup.APIKey == "" {
		c.Lookup.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Lookup.BaseURL == "" {
		c.Lookup.BaseURL = "https://api.openai.com/v1/responses"
	}
	if c.Lookup.Model == "" {
		c.Lookup.Model = "gpt-5.2"
	}
	if c.Lookup.MaxOutputTokens == 0 {
		c.Lookup.MaxOutputTokens = 2500
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 15
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token missing: %w", internalerr.ErrInvalidConfig)
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "sqlite" {
		return fmt.Errorf("unknown cache backend %q: %w", c.Cache.Backend, internalerr.ErrInvalidConfig)
	}
	if c.Cache.Backend == "sqlite" && c.Cache.Path == "" {
		return fmt.Errorf("sqlite cache requires a path: %w", internalerr.ErrInvalidConfig)
	}
	if c.Cache.TTLMinutes < 0 {
		return fmt.Errorf("negative cache TTL: %w", internalerr.ErrInvalidConfig)
	}
	if c.Telegram.PollTimeoutSec < 0 {
		return fmt.Errorf("negative poll timeout: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}
