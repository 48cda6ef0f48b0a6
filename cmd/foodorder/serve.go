package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"foodorder/internal/api"
	"foodorder/internal/orders"
	"foodorder/internal/pages"
	"foodorder/internal/paths"
)

var (
	servePort         int
	serveHost         string
	serveCatalogDir   string
	servePublicDir    string
	serveServerConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the foodorder web server. It serves the home page, the order form and
the restaurant statistics page, the client script and images from the public
directory, and the JSON endpoints under /server.js that the order form uses.

Orders are kept in memory only and are lost when the server stops.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config: 3000)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config: all interfaces)")
	serveCmd.Flags().StringVar(&serveCatalogDir, "catalog", "", "Restaurants directory (overrides config)")
	serveCmd.Flags().StringVar(&servePublicDir, "public", "", "Static assets directory (overrides config)")
	serveCmd.Flags().StringVar(&serveServerConfig, "server-config", "", "TOML file with HTTP server tuning")
}

func runServe(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	result, err := loadConfig(root)
	if err != nil {
		return err
	}
	cfg := result.Config

	// Flags win over config and environment
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if serveCatalogDir != "" {
		cfg.Catalog.Dir = serveCatalogDir
	}
	if servePublicDir != "" {
		cfg.Public.Dir = servePublicDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := newLogger(root, cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closer.Close()

	for _, ov := range result.EnvOverrides {
		logger.Debug("Config overridden by environment", "env", ov.EnvVar, "path", ov.Path)
	}

	serverConfig := api.DefaultServerConfig()
	if serveServerConfig != "" {
		serverConfig, err = api.LoadServerConfig(paths.Resolve(root, serveServerConfig))
		if err != nil {
			return err
		}
	}

	renderer, err := pages.New(cfg.Server.Site)
	if err != nil {
		return err
	}

	addr := cfg.Addr()
	server, err := api.NewServer(addr, api.Deps{
		Catalog:    newCatalog(root, cfg, logger),
		Aggregator: orders.NewAggregator(),
		Pages:      renderer,
		PublicDir:  paths.Resolve(root, cfg.Public.Dir),
		Logger:     logger,
		Metrics:    cfg.Metrics.Enabled,
	}, serverConfig)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "Server running on http://%s\n", displayAddr(cfg.Server.Host, cfg.Server.Port))
		fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout())
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", "error", err)
			return err
		}

		logger.Info("Server stopped gracefully")
	}

	return nil
}

// displayAddr turns the bind address into something a browser can open.
func displayAddr(host string, port int) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", host, port)
}
