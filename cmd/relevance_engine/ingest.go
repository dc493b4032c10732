package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-relevance/internal/ingestion"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and clean a job posting",
	Long:  "Fetch a job posting from a URL or read it from a file, clean the content, and print the text or save it with metadata.",
	RunE:  runIngest,
}

var (
	ingestURL     string
	ingestFile    string
	ingestOutDir  string
	ingestBrowser bool
	ingestVerbose bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to a job posting text or HTML file")
	ingestCmd.Flags().StringVarP(&ingestOutDir, "out", "o", "", "Output directory (prints to stdout when omitted)")
	ingestCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "Use headless browser for SPA job sites (requires Chrome)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print fetch details")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	if ingestURL == "" && ingestFile == "" {
		return fmt.Errorf("either --url or --file must be provided")
	}
	if ingestURL != "" && ingestFile != "" {
		return fmt.Errorf("--url and --file are mutually exclusive; provide only one")
	}

	var cleanedText string
	var metadata *ingestion.Metadata
	var err error

	if ingestURL != "" {
		cleanedText, metadata, err = ingestion.IngestFromURL(context.Background(), ingestURL, ingestBrowser, ingestVerbose)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	} else {
		cleanedText, metadata, err = ingestion.IngestFromFile(ingestFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	}

	if ingestOutDir == "" {
		fmt.Fprintln(os.Stdout, cleanedText)
		return nil
	}

	if err := ingestion.WriteOutput(ingestOutDir, "job_posting", cleanedText, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Successfully ingested job posting\n")
	fmt.Fprintf(os.Stdout, "Cleaned text: %s/job_posting.cleaned.txt\n", ingestOutDir)
	fmt.Fprintf(os.Stdout, "Metadata: %s/job_posting.meta.json\n", ingestOutDir)

	return nil
}
