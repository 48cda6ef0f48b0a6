package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// ConfigPathEnvVar points at an explicit config file.
const ConfigPathEnvVar = "FOODORDER_CONFIG_PATH"

// EnvOverride records one environment variable that changed the config.
type EnvOverride struct {
	EnvVar string `json:"envVar"`
	Path   string `json:"path"`
	Value  string `json:"value"`
}

type envKind int

const (
	envString envKind = iota
	envInt
	envBool
)

type envMapping struct {
	path string
	kind envKind
}

var envVarMappings = map[string]envMapping{
	"FOODORDER_HOST":            {"server.host", envString},
	"FOODORDER_PORT":            {"server.port", envInt},
	"FOODORDER_SITE":            {"server.site", envString},
	"FOODORDER_CATALOG_DIR":     {"catalog.dir", envString},
	"FOODORDER_PUBLIC_DIR":      {"public.dir", envString},
	"FOODORDER_LOG_LEVEL":       {"logging.level", envString},
	"FOODORDER_LOG_FORMAT":      {"logging.format", envString},
	"FOODORDER_LOG_FILE":        {"logging.file", envString},
	"FOODORDER_LOG_MAX_SIZE":    {"logging.maxSize", envString},
	"FOODORDER_LOG_MAX_BACKUPS": {"logging.maxBackups", envInt},
	"FOODORDER_METRICS_ENABLED": {"metrics.enabled", envBool},
}

// GetSupportedEnvVars lists every FOODORDER_* variable, sorted.
func GetSupportedEnvVars() []string {
	vars := make([]string, 0, len(envVarMappings)+1)
	for k := range envVarMappings {
		vars = append(vars, k)
	}
	vars = append(vars, ConfigPathEnvVar)
	sort.Strings(vars)
	return vars
}

// EnvPath returns the config path a variable maps to, or "" if unknown.
func EnvPath(envVar string) string {
	return envVarMappings[envVar].path
}

// applyEnvOverrides sets config values from the environment. Values that do
// not parse for their field's type are skipped.
func applyEnvOverrides(cfg *Config) []EnvOverride {
	var overrides []EnvOverride

	for _, envVar := range GetSupportedEnvVars() {
		m, ok := envVarMappings[envVar]
		if !ok {
			continue
		}
		raw, set := os.LookupEnv(envVar)
		if !set || raw == "" {
			continue
		}

		var value interface{}
		switch m.kind {
		case envInt:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				continue
			}
			value = n
		case envBool:
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				continue
			}
			value = b
		default:
			value = raw
		}

		if applyOverride(cfg, m.path, value) {
			overrides = append(overrides, EnvOverride{EnvVar: envVar, Path: m.path, Value: raw})
		}
	}

	return overrides
}

// applyOverride sets a single dotted config path. It reports false for an
// unknown path or a value of the wrong type.
func applyOverride(cfg *Config, path string, value interface{}) bool {
	parts := strings.Split(path, ".")
	if len(parts) != 2 {
		return false
	}

	switch parts[0] {
	case "server":
		switch parts[1] {
		case "host":
			return setString(&cfg.Server.Host, value)
		case "port":
			return setInt(&cfg.Server.Port, value)
		case "site":
			return setString(&cfg.Server.Site, value)
		}
	case "catalog":
		if parts[1] == "dir" {
			return setString(&cfg.Catalog.Dir, value)
		}
	case "public":
		if parts[1] == "dir" {
			return setString(&cfg.Public.Dir, value)
		}
	case "logging":
		switch parts[1] {
		case "level":
			return setString(&cfg.Logging.Level, value)
		case "format":
			return setString(&cfg.Logging.Format, value)
		case "file":
			return setString(&cfg.Logging.File, value)
		case "maxSize":
			return setString(&cfg.Logging.MaxSize, value)
		case "maxBackups":
			return setInt(&cfg.Logging.MaxBackups, value)
		}
	case "metrics":
		if parts[1] == "enabled" {
			return setBool(&cfg.Metrics.Enabled, value)
		}
	}
	return false
}

func setString(dst *string, value interface{}) bool {
	s, ok := value.(string)
	if ok {
		*dst = s
	}
	return ok
}

func setInt(dst *int, value interface{}) bool {
	n, ok := value.(int)
	if ok {
		*dst = n
	}
	return ok
}

func setBool(dst *bool, value interface{}) bool {
	b, ok := value.(bool)
	if ok {
		*dst = b
	}
	return ok
}
