package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"foodorder/internal/paths"
)

// CurrentVersion is the only config schema version understood.
const CurrentVersion = 1

// Config is the complete foodorder configuration.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Catalog CatalogConfig `json:"catalog" mapstructure:"catalog"`
	Public  PublicConfig  `json:"public" mapstructure:"public"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// ServerConfig holds the listen address and site title.
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
	Site string `json:"site" mapstructure:"site"`
}

// CatalogConfig points at the restaurant menu directory.
type CatalogConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// PublicConfig points at the static asset directory (client.js, images).
type PublicConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format     string `json:"format" mapstructure:"format"`
	Level      string `json:"level" mapstructure:"level"`
	File       string `json:"file" mapstructure:"file"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			Host: "",
			Port: 3000,
			Site: "Middle-earth Eats",
		},
		Catalog: CatalogConfig{Dir: "restaurants"},
		Public:  PublicConfig{Dir: "public"},
		Logging: LoggingConfig{
			Format:     "human",
			Level:      "info",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Addr returns host:port for net/http.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// LoadResult describes where a configuration came from.
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// LoadConfig loads configuration from .foodorder/config.json, falling back to
// defaults when the file does not exist. Environment overrides are not applied.
func LoadConfig(root string) (*Config, error) {
	cfg, _, err := loadConfigFromDir(root)
	return cfg, err
}

// LoadConfigWithDetails resolves the config file ($FOODORDER_CONFIG_PATH first,
// then <root>/.foodorder/config.json), then applies FOODORDER_* overrides.
func LoadConfigWithDetails(root string) (*LoadResult, error) {
	result := &LoadResult{}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		cfg, err := loadConfigFromPath(envPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s=%s: %w", ConfigPathEnvVar, envPath, err)
		}
		result.Config = cfg
		result.ConfigPath = envPath
	} else {
		cfg, found, err := loadConfigFromDir(root)
		if err != nil {
			return nil, err
		}
		result.Config = cfg
		result.UsedDefaults = !found
		if found {
			result.ConfigPath = paths.ConfigPath(root)
		}
	}

	result.EnvOverrides = applyEnvOverrides(result.Config)
	return result, nil
}

func loadConfigFromDir(root string) (*Config, bool, error) {
	v := newViper()
	v.SetConfigName(strings.TrimSuffix(paths.ConfigFileName, filepath.Ext(paths.ConfigFileName)))
	v.SetConfigType("json")
	v.AddConfigPath(paths.StateDir(root))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, false, err
	}
	return &cfg, true, nil
}

func loadConfigFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newViper seeds every key with its default so partial files only override
// what they mention.
func newViper() *viper.Viper {
	d := DefaultConfig()
	v := viper.New()
	v.SetDefault("version", d.Version)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.site", d.Server.Site)
	v.SetDefault("catalog.dir", d.Catalog.Dir)
	v.SetDefault("public.dir", d.Public.Dir)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	return v
}

// Save writes the configuration to .foodorder/config.json
func (c *Config) Save(root string) error {
	if _, err := paths.EnsureStateDir(root); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(paths.ConfigPath(root), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: fmt.Sprintf("port %d out of range", c.Server.Port)}
	}
	if c.Catalog.Dir == "" {
		return &ConfigError{Field: "catalog.dir", Message: "must not be empty"}
	}
	if c.Public.Dir == "" {
		return &ConfigError{Field: "public.dir", Message: "must not be empty"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q (want human or json)", c.Logging.Format)}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	if c.Logging.MaxBackups < 0 {
		return &ConfigError{Field: "logging.maxBackups", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
