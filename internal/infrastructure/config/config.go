package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Filesystem FilesystemConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// FilesystemConfig holds sandbox and operation limits.
type FilesystemConfig struct {
	// AllowedPaths is read once at startup; comma-separated in the environment.
	AllowedPaths []string `envconfig:"FILESYSTEM_ALLOWED_PATHS" default:"/workspace,/tmp"`
	MaxReadSize  int64    `envconfig:"FILESYSTEM_MAX_READ_SIZE" default:"1048576"`
	MaxDepth     int      `envconfig:"FILESYSTEM_MAX_DEPTH" default:"10"`
	FindLimit    int      `envconfig:"FILESYSTEM_FIND_LIMIT" default:"1000"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration. The per-client limit
// applies whenever Enabled is set; the global limit additionally needs a
// positive GlobalRequestsPerSecond.
type RateLimitConfig struct {
	RequestsPerSecond       int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst                   int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	GlobalRequestsPerSecond int  `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"0"`
	GlobalBurst             int  `envconfig:"RATE_LIMIT_GLOBAL_BURST" default:"0"`
	Enabled                 bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Filesystem: FilesystemConfig{
			AllowedPaths: []string{"/workspace", "/tmp"},
			MaxReadSize:  1024 * 1024,
			MaxDepth:     10,
			FindLimit:    1000,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           false,
		},
	}
}

// Validate checks limits that envconfig cannot express.
func (c *Config) Validate() error {
	if c.Filesystem.MaxReadSize < 0 {
		return fmt.Errorf("FILESYSTEM_MAX_READ_SIZE must not be negative, got %d", c.Filesystem.MaxReadSize)
	}
	if c.Filesystem.MaxDepth < 0 {
		return fmt.Errorf("FILESYSTEM_MAX_DEPTH must not be negative, got %d", c.Filesystem.MaxDepth)
	}
	if c.Filesystem.FindLimit <= 0 {
		return fmt.Errorf("FILESYSTEM_FIND_LIMIT must be positive, got %d", c.Filesystem.FindLimit)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive when rate limiting is enabled")
	}
	if c.RateLimit.GlobalRequestsPerSecond < 0 || c.RateLimit.GlobalBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_GLOBAL_RPS and RATE_LIMIT_GLOBAL_BURST must not be negative")
	}
	return nil
}
