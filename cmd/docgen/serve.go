package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/docgen-client/internal/config"
	"github.com/jonathan/docgen-client/internal/server"
)

var (
	servePort    int
	serveBackend string
	serveConfig  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes session, collection and generation endpoints for a browser or other rendering surface.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveBackend, "backend", "", "Base URL of the generation backend")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

// resolveConfig layers flag values over the config file, environment and
// built-in defaults, in that order of precedence.
func resolveConfig(configPath, backendURL string, port int) (config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if port != 0 {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfig, serveBackend, servePort)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		BackendURL:     cfg.BackendURL,
		RequestTimeout: time.Duration(cfg.RequestTimeoutSecs) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
