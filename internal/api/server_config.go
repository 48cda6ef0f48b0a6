package api

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ServerConfig tunes the HTTP layer. It is optional; every field has a default.
type ServerConfig struct {
	ReadTimeout     Duration        `toml:"read_timeout"`
	WriteTimeout    Duration        `toml:"write_timeout"`
	IdleTimeout     Duration        `toml:"idle_timeout"`
	ShutdownTimeout Duration        `toml:"shutdown_timeout"`
	MaxOrderBytes   int64           `toml:"max_order_bytes"` // Default 1 MiB
	CORS            CORSConfig      `toml:"cors"`
	RateLimit       RateLimitConfig `toml:"rate_limit"`
	Gzip            GzipConfig      `toml:"gzip"`
}

// CORSConfig controls the Access-Control-* headers.
type CORSConfig struct {
	Enabled     bool   `toml:"enabled"`
	AllowOrigin string `toml:"allow_origin"`
}

// RateLimitConfig limits order submissions across all clients.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// GzipConfig controls response compression.
type GzipConfig struct {
	Enabled bool `toml:"enabled"`
	MinSize int  `toml:"min_size"` // Bytes; smaller responses are sent as-is
}

// Duration is a time.Duration written as "15s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultServerConfig returns the configuration used when no file is given.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadTimeout:     Duration{15 * time.Second},
		WriteTimeout:    Duration{15 * time.Second},
		IdleTimeout:     Duration{60 * time.Second},
		ShutdownTimeout: Duration{10 * time.Second},
		MaxOrderBytes:   1 << 20,
		CORS: CORSConfig{
			Enabled:     true,
			AllowOrigin: "*",
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Gzip: GzipConfig{
			Enabled: true,
			MinSize: 1024,
		},
	}
}

// LoadServerConfig loads configuration from a TOML file
func LoadServerConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Start with defaults
	config := DefaultServerConfig()

	if _, err := toml.Decode(string(data), config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid
func (c *ServerConfig) Validate() error {
	if c.MaxOrderBytes <= 0 {
		return fmt.Errorf("max_order_bytes must be positive")
	}
	if c.ReadTimeout.Duration < 0 || c.WriteTimeout.Duration < 0 || c.IdleTimeout.Duration < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.ShutdownTimeout.Duration <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit.requests_per_second must be positive")
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate_limit.burst must be positive")
		}
	}
	if c.Gzip.MinSize < 0 {
		return fmt.Errorf("gzip.min_size must not be negative")
	}
	return nil
}
