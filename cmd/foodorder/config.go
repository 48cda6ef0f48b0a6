package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"foodorder/internal/config"
	"foodorder/internal/paths"
)

var (
	configFormat string
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage foodorder configuration",
	Long:  "View and manage foodorder configuration stored in .foodorder/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration after the config file and
FOODORDER_* environment overrides are applied.

Examples:
  foodorder config show                # Pretty-print current config
  foodorder config show --format json  # Raw JSON output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat(configFormat)
		if err != nil {
			return err
		}
		root, err := projectRoot()
		if err != nil {
			return err
		}
		result, err := config.LoadConfigWithDetails(root)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if format == FormatJSON {
			return outputConfigJSON(cmd.OutOrStdout(), result)
		}
		outputConfigHuman(cmd.OutOrStdout(), result)
		return nil
	},
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Long:  "Display all supported FOODORDER_* environment variable overrides",
	Run: func(cmd *cobra.Command, args []string) {
		outputConfigEnv(cmd.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		path, err := initConfig(root, configForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string               `json:"configPath,omitempty"`
	UsedDefaults bool                 `json:"usedDefaults"`
	EnvOverrides []config.EnvOverride `json:"envOverrides,omitempty"`
	Config       *config.Config       `json:"config"`
}

func outputConfigJSON(w io.Writer, result *config.LoadResult) error {
	return writeJSON(w, ConfigShowResponse{
		ConfigPath:   result.ConfigPath,
		UsedDefaults: result.UsedDefaults,
		EnvOverrides: result.EnvOverrides,
		Config:       result.Config,
	})
}

func outputConfigHuman(w io.Writer, result *config.LoadResult) {
	fmt.Fprintln(w, "foodorder Configuration")
	fmt.Fprintln(w, strings.Repeat("─", 50))

	if result.UsedDefaults {
		fmt.Fprintln(w, "Source: defaults (no config file found)")
	} else if result.ConfigPath != "" {
		fmt.Fprintf(w, "Source: %s\n", result.ConfigPath)
	}

	if len(result.EnvOverrides) > 0 {
		fmt.Fprintln(w, "\nEnvironment Overrides:")
		for _, ov := range result.EnvOverrides {
			fmt.Fprintf(w, "  %s=%s → %s\n", ov.EnvVar, ov.Value, ov.Path)
		}
	}

	fmt.Fprintln(w)

	cfg := result.Config
	defaults := config.DefaultConfig()

	printConfigSection(w, "version", cfg.Version, defaults.Version)

	fmt.Fprintln(w, "\nserver:")
	printConfigSection(w, "  host", cfg.Server.Host, defaults.Server.Host)
	printConfigSection(w, "  port", cfg.Server.Port, defaults.Server.Port)
	printConfigSection(w, "  site", cfg.Server.Site, defaults.Server.Site)

	fmt.Fprintln(w, "\ncatalog:")
	printConfigSection(w, "  dir", cfg.Catalog.Dir, defaults.Catalog.Dir)

	fmt.Fprintln(w, "\npublic:")
	printConfigSection(w, "  dir", cfg.Public.Dir, defaults.Public.Dir)

	fmt.Fprintln(w, "\nlogging:")
	printConfigSection(w, "  level", cfg.Logging.Level, defaults.Logging.Level)
	printConfigSection(w, "  format", cfg.Logging.Format, defaults.Logging.Format)
	printConfigSection(w, "  file", cfg.Logging.File, defaults.Logging.File)
	printConfigSection(w, "  maxSize", cfg.Logging.MaxSize, defaults.Logging.MaxSize)
	printConfigSection(w, "  maxBackups", cfg.Logging.MaxBackups, defaults.Logging.MaxBackups)

	fmt.Fprintln(w, "\nmetrics:")
	printConfigSection(w, "  enabled", cfg.Metrics.Enabled, defaults.Metrics.Enabled)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'foodorder config show --format json' for machine-readable output")
	fmt.Fprintln(w, "Use 'foodorder config env' to see supported environment variables")
}

func printConfigSection(w io.Writer, name string, value, defaultValue interface{}) {
	modified := ""
	if value != defaultValue {
		modified = fmt.Sprintf(" (default: %v)", defaultValue)
	}
	fmt.Fprintf(w, "%s: %v%s\n", name, value, modified)
}

func outputConfigEnv(w io.Writer) {
	fmt.Fprintln(w, "Supported environment variables:")
	fmt.Fprintln(w)
	for _, envVar := range config.GetSupportedEnvVars() {
		path := config.EnvPath(envVar)
		if path == "" {
			path = "(config file location)"
		}
		marker := ""
		if v, ok := os.LookupEnv(envVar); ok && v != "" {
			marker = fmt.Sprintf(" [set: %s]", v)
		}
		fmt.Fprintf(w, "  %-28s %s%s\n", envVar, path, marker)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Variables may also be placed in .env or .env.local in the project root.")
}

// initConfig writes the defaults to <root>/.foodorder/config.json.
func initConfig(root string, force bool) (string, error) {
	path := paths.ConfigPath(root)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(root); err != nil {
		return "", err
	}
	return path, nil
}
