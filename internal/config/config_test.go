package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for envVar := range envVarMappings {
		t.Setenv(envVar, "")
	}
	t.Setenv(ConfigPathEnvVar, "")
}

func writeConfig(t *testing.T, root, content string) string {
	t.Helper()
	dir := filepath.Join(root, ".foodorder")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create .foodorder dir: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Catalog.Dir != "restaurants" {
		t.Errorf("Catalog.Dir = %q, want %q", cfg.Catalog.Dir, "restaurants")
	}
	if cfg.Public.Dir != "public" {
		t.Errorf("Public.Dir = %q, want %q", cfg.Public.Dir, "public")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "human" {
		t.Errorf("Logging = %+v, want info/human", cfg.Logging)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Addr(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Addr(); got != ":3000" {
		t.Errorf("Addr() = %q, want %q", got, ":3000")
	}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8080
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8080")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"defaults", func(*Config) {}, "", false},
		{"json format", func(c *Config) { c.Logging.Format = "json" }, "", false},
		{"upper-case level", func(c *Config) { c.Logging.Level = "DEBUG" }, "", false},
		{"port zero picks free port", func(c *Config) { c.Server.Port = 0 }, "", false},
		{"unsupported version", func(c *Config) { c.Version = 7 }, "version", true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port", true},
		{"empty catalog dir", func(c *Config) { c.Catalog.Dir = "" }, "catalog.dir", true},
		{"empty public dir", func(c *Config) { c.Public.Dir = "" }, "public.dir", true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format", true},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level", true},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.maxBackups", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			ce, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "version",
		Message: "unsupported config version 99",
	}

	got := err.Error()
	want := "config error in field 'version': unsupported config version 99"

	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000 (default)", cfg.Server.Port)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{
		"version": 1,
		"server": {"port": 8080},
		"catalog": {"dir": "menus"},
		"logging": {"level": "debug"}
	}`)

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.Dir != "menus" {
		t.Errorf("Catalog.Dir = %q, want %q", cfg.Catalog.Dir, "menus")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	// Keys absent from the file keep their defaults.
	if cfg.Public.Dir != "public" {
		t.Errorf("Public.Dir = %q, want default %q", cfg.Public.Dir, "public")
	}
	if cfg.Logging.Format != "human" {
		t.Errorf("Logging.Format = %q, want default %q", cfg.Logging.Format, "human")
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should keep its default")
	}
}

func TestConfig_Save(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Port = 4000
	cfg.Logging.Format = "json"
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ".foodorder", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", loaded.Server.Port)
	}
	if loaded.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", loaded.Logging.Format, "json")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config, overrides []EnvOverride)
	}{
		{
			name:    "logging level override",
			envVars: map[string]string{"FOODORDER_LOG_LEVEL": "debug"},
			validate: func(t *testing.T, cfg *Config, overrides []EnvOverride) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
				}
				if len(overrides) != 1 {
					t.Fatalf("len(overrides) = %d, want 1", len(overrides))
				}
				if overrides[0].Path != "logging.level" {
					t.Errorf("override path = %q, want logging.level", overrides[0].Path)
				}
			},
		},
		{
			name:    "port int override",
			envVars: map[string]string{"FOODORDER_PORT": "8081"},
			validate: func(t *testing.T, cfg *Config, overrides []EnvOverride) {
				if cfg.Server.Port != 8081 {
					t.Errorf("Server.Port = %d, want 8081", cfg.Server.Port)
				}
			},
		},
		{
			name:    "metrics bool override",
			envVars: map[string]string{"FOODORDER_METRICS_ENABLED": "false"},
			validate: func(t *testing.T, cfg *Config, overrides []EnvOverride) {
				if cfg.Metrics.Enabled {
					t.Error("Metrics.Enabled should be false")
				}
			},
		},
		{
			name: "multiple overrides",
			envVars: map[string]string{
				"FOODORDER_LOG_LEVEL":   "warn",
				"FOODORDER_CATALOG_DIR": "/srv/menus",
				"FOODORDER_PUBLIC_DIR":  "/srv/public",
			},
			validate: func(t *testing.T, cfg *Config, overrides []EnvOverride) {
				if cfg.Logging.Level != "warn" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
				}
				if cfg.Catalog.Dir != "/srv/menus" {
					t.Errorf("Catalog.Dir = %q", cfg.Catalog.Dir)
				}
				if cfg.Public.Dir != "/srv/public" {
					t.Errorf("Public.Dir = %q", cfg.Public.Dir)
				}
				if len(overrides) != 3 {
					t.Errorf("len(overrides) = %d, want 3", len(overrides))
				}
			},
		},
		{
			name:    "invalid int ignored",
			envVars: map[string]string{"FOODORDER_PORT": "not-a-number"},
			validate: func(t *testing.T, cfg *Config, overrides []EnvOverride) {
				if cfg.Server.Port != 3000 {
					t.Errorf("Server.Port = %d, want 3000 (default)", cfg.Server.Port)
				}
				if len(overrides) != 0 {
					t.Errorf("len(overrides) = %d, want 0 (invalid value should be skipped)", len(overrides))
				}
			},
		},
		{
			name:    "invalid bool ignored",
			envVars: map[string]string{"FOODORDER_METRICS_ENABLED": "sometimes"},
			validate: func(t *testing.T, cfg *Config, overrides []EnvOverride) {
				if !cfg.Metrics.Enabled {
					t.Error("Metrics.Enabled should keep its default")
				}
				if len(overrides) != 0 {
					t.Errorf("len(overrides) = %d, want 0", len(overrides))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := DefaultConfig()
			overrides := applyEnvOverrides(cfg)

			tt.validate(t, cfg, overrides)
		})
	}
}

func TestLoadConfigWithDetails(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()

	result, err := LoadConfigWithDetails(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}

	if !result.UsedDefaults {
		t.Error("UsedDefaults should be true when no config file exists")
	}
	if result.ConfigPath != "" {
		t.Errorf("ConfigPath = %q, want empty string", result.ConfigPath)
	}
}

func TestLoadConfigWithDetails_FileInStateDir(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, `{"version": 1, "server": {"port": 5000}}`)

	result, err := LoadConfigWithDetails(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}
	if result.UsedDefaults {
		t.Error("UsedDefaults should be false when the file exists")
	}
	if result.ConfigPath != path {
		t.Errorf("ConfigPath = %q, want %q", result.ConfigPath, path)
	}
	if result.Config.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", result.Config.Server.Port)
	}
}

func TestLoadConfigWithDetails_EnvConfigPath(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom-config.json")
	if err := os.WriteFile(configPath, []byte(`{"version": 1, "catalog": {"dir": "elsewhere"}}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	result, err := LoadConfigWithDetails(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}

	if result.ConfigPath != configPath {
		t.Errorf("ConfigPath = %q, want %q", result.ConfigPath, configPath)
	}
	if result.Config.Catalog.Dir != "elsewhere" {
		t.Errorf("Catalog.Dir = %q, want %q", result.Config.Catalog.Dir, "elsewhere")
	}
	if result.Config.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want default 3000", result.Config.Server.Port)
	}
}

func TestLoadConfigWithDetails_EnvOverridesApplied(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"version": 1, "server": {"port": 5000}}`)

	t.Setenv("FOODORDER_PORT", "6000")
	t.Setenv("FOODORDER_LOG_LEVEL", "error")

	result, err := LoadConfigWithDetails(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}

	if result.Config.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want 6000 (env wins over file)", result.Config.Server.Port)
	}
	if result.Config.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want %q", result.Config.Logging.Level, "error")
	}
	if len(result.EnvOverrides) != 2 {
		t.Errorf("len(EnvOverrides) = %d, want 2", len(result.EnvOverrides))
	}
}

func TestLoadConfigWithDetails_InvalidConfigPath(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.json"))

	if _, err := LoadConfigWithDetails(t.TempDir()); err == nil {
		t.Error("LoadConfigWithDetails() should return error for a missing FOODORDER_CONFIG_PATH")
	}
}

func TestLoadConfigWithDetails_InvalidJSON(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "{ invalid }")

	if _, err := LoadConfigWithDetails(tmpDir); err == nil {
		t.Error("LoadConfigWithDetails() should return error for invalid JSON config")
	}
}

func TestLoadConfigFromPath_NotFound(t *testing.T) {
	if _, err := loadConfigFromPath(filepath.Join(t.TempDir(), "config.json")); err == nil {
		t.Error("loadConfigFromPath() should return error for nonexistent file")
	}
}

func TestGetSupportedEnvVars(t *testing.T) {
	vars := GetSupportedEnvVars()

	want := map[string]bool{"FOODORDER_PORT": false, "FOODORDER_LOG_LEVEL": false, ConfigPathEnvVar: false}
	for i, v := range vars {
		if _, ok := want[v]; ok {
			want[v] = true
		}
		if i > 0 && vars[i-1] > v {
			t.Errorf("GetSupportedEnvVars() not sorted at %d: %q > %q", i, vars[i-1], v)
		}
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("GetSupportedEnvVars() missing %s", v)
		}
	}
}

func TestApplyOverride(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value interface{}
		ok    bool
	}{
		{"server.host", "server.host", "0.0.0.0", true},
		{"server.port", "server.port", 9000, true},
		{"logging.maxBackups", "logging.maxBackups", 5, true},
		{"metrics.enabled", "metrics.enabled", false, true},
		{"unknown top-level", "unknown.key", "x", false},
		{"incomplete path", "server", "x", false},
		{"too deep", "server.port.extra", 1, false},
		{"port wrong type", "server.port", "9000", false},
		{"level wrong type", "logging.level", 3, false},
		{"metrics wrong type", "metrics.enabled", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if got := applyOverride(cfg, tt.path, tt.value); got != tt.ok {
				t.Errorf("applyOverride(%q, %v) = %v, want %v", tt.path, tt.value, got, tt.ok)
			}
		})
	}
}
