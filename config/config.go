// Package config loads the settings of the cgt server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the cgt server.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Limits  LimitsConfig  `toml:"limits"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Addr returns the host:port the server listens on.
func (c ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// LimitsConfig bounds the work a client can request.
type LimitsConfig struct {
	RateLimit    float64 `toml:"rate_limit"` // computations per second, 0 disables
	Burst        int     `toml:"burst"`
	MaxBodyBytes int64   `toml:"max_body_bytes"`
	CacheSize    int     `toml:"cache_size"` // computed results kept, 0 disables
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefault returns a Config with sensible defaults.
func NewDefault() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Limits: LimitsConfig{
			RateLimit:    10,
			Burst:        20,
			MaxBodyBytes: 5 << 20,
			CacheSize:    64,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from files, later files overriding earlier ones,
// then applies environment overrides. Missing files are skipped.
func Load(paths ...string) (*Config, error) {
	config := NewDefault()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies CGT_* environment variables to config.
func applyEnvOverrides(config *Config) error {
	if host := os.Getenv("CGT_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("CGT_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid CGT_PORT %q: %w", port, err)
		}
		config.Server.Port = p
	}
	if level := os.Getenv("CGT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if rate := os.Getenv("CGT_RATE_LIMIT"); rate != "" {
		r, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return fmt.Errorf("invalid CGT_RATE_LIMIT %q: %w", rate, err)
		}
		config.Limits.RateLimit = r
	}
	if size := os.Getenv("CGT_CACHE_SIZE"); size != "" {
		s, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("invalid CGT_CACHE_SIZE %q: %w", size, err)
		}
		config.Limits.CacheSize = s
	}
	return nil
}

// Validate checks that the configuration can be served.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Limits.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit %v", c.Limits.RateLimit)
	}
	if c.Limits.CacheSize < 0 {
		return fmt.Errorf("invalid cache size %d", c.Limits.CacheSize)
	}
	if c.Limits.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body size %d", c.Limits.MaxBodyBytes)
	}
	return nil
}
