package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"foodorder/internal/catalog"
	"foodorder/internal/config"
	"foodorder/internal/paths"
	"foodorder/internal/slogutil"
	"foodorder/internal/version"
)

var (
	// rootFlag is the --root flag value; empty means $FOODORDER_ROOT or cwd
	rootFlag     string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "foodorder",
	Short: "foodorder - a small food-ordering web server",
	Long: `foodorder serves a food-ordering demo site: restaurant menus are read from
files on disk, orders are accepted over HTTP and aggregated in memory into
per-restaurant statistics.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		root, err := paths.Root(rootFlag)
		if err != nil {
			return fmt.Errorf("resolve project root: %w", err)
		}
		return loadEnvFiles(root)
	},
}

func init() {
	rootCmd.SetVersionTemplate("foodorder version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"Project root holding restaurants/, public/ and .foodorder/ (default: $FOODORDER_ROOT or the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
}

// loadEnvFiles loads <root>/.env.local then <root>/.env. godotenv never
// overwrites variables that are already set, so the real environment wins,
// then .env.local, then .env.
func loadEnvFiles(root string) error {
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// projectRoot resolves --root after env files are loaded.
func projectRoot() (string, error) {
	return paths.Root(rootFlag)
}

// loadConfig loads the effective configuration and applies --log-level.
func loadConfig(root string) (*config.LoadResult, error) {
	result, err := config.LoadConfigWithDetails(root)
	if err != nil {
		return nil, err
	}
	if logLevelFlag != "" {
		result.Config.Logging.Level = logLevelFlag
	}
	if err := result.Config.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// newLogger builds the process logger from config. A relative log file is
// resolved against root.
func newLogger(root string, cfg *config.Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	file := cfg.Logging.File
	if file != "" {
		file = paths.Resolve(root, file)
	}
	return slogutil.Setup(console, slogutil.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       file,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

// newCatalog opens the configured restaurants directory.
func newCatalog(root string, cfg *config.Config, logger *slog.Logger) *catalog.Catalog {
	return catalog.New(paths.Resolve(root, cfg.Catalog.Dir), logger)
}
