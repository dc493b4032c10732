package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/resume-relevance/internal/logging"
	"github.com/jonathan/resume-relevance/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort        int
	serveWeightsPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for storing documents and running evaluations.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (PORT env var overrides the default)")
	serveCmd.Flags().StringVar(&serveWeightsPath, "weights", "", "Path to config.json with a custom weight table")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	port := servePort
	if !cmd.Flags().Changed("port") {
		if envPort := os.Getenv("PORT"); envPort != "" {
			p, err := strconv.Atoi(envPort)
			if err != nil {
				return fmt.Errorf("invalid PORT environment variable: %w", err)
			}
			port = p
		}
	}

	weights, err := loadWeights(serveWeightsPath)
	if err != nil {
		return err
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger := logging.New(logLevel)
	defer logger.Sync() //nolint:errcheck

	cfg := server.Config{
		Port:         port,
		DatabaseURL:  databaseURL,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Weights:      weights,
		Logger:       logger,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
