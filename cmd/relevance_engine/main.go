// Package main provides the entry point for the resume relevance engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relevance_engine",
	Short: "Resume relevance scoring engine",
	Long:  "Scores resumes against job descriptions by combining hard keyword matching with semantic embedding similarity, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
