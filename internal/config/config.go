package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration read from the environment
type Config struct {
	// RedisAddr selects multi-process mode; empty keeps everything in memory
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DiscordToken enables the bot when set
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StoragePollInterval enables the storage-change fallback when positive
	StoragePollInterval time.Duration `env:"STORAGE_POLL_INTERVAL" envDefault:"0s"`

	// NicknameTTL expires remembered nicknames after a quiet period; zero keeps them
	NicknameTTL time.Duration `env:"NICKNAME_TTL" envDefault:"0s"`

	// DiceSeed fixes the roller's seed; zero seeds from the clock
	DiceSeed int64 `env:"DICE_SEED" envDefault:"0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads an optional .env file and then the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR cannot be empty")
	}

	if c.StoragePollInterval < 0 {
		return errors.New("STORAGE_POLL_INTERVAL cannot be negative")
	}

	if c.NicknameTTL < 0 {
		return errors.New("NICKNAME_TTL cannot be negative")
	}

	if c.RedisDB < 0 {
		return errors.New("REDIS_DB cannot be negative")
	}

	return nil
}

// UseRedis reports whether rooms, players and macros live in Redis
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// DiscordEnabled reports whether the bot should start
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}
