package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/observability"
	"github.com/jonathan/resume-relevance/internal/scoring"
	"github.com/jonathan/resume-relevance/internal/types"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a directory of resumes against one job description",
	Long:  "Parse every resume file in a directory, score each against the job description concurrently, and print the candidates ranked best first.",
	RunE:  runBatch,
}

var (
	batchJobArg      string
	batchResumesDir  string
	batchWeightsPath string
	batchWorkers     int
	batchJSON        bool
	batchAPIKey      string
	batchUseBrowser  bool
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchJobArg, "jd", "j", "", "Job description file path or URL (required)")
	batchCmd.Flags().StringVarP(&batchResumesDir, "resumes", "d", "", "Directory of resume files (required)")
	batchCmd.Flags().StringVar(&batchWeightsPath, "weights", "", "Path to config.json with a custom weight table")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Worker pool size (0 uses the default)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Print results as JSON instead of formatted output")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	batchCmd.Flags().BoolVar(&batchUseBrowser, "use-browser", false, "Use headless browser for SPA job sites (requires Chrome)")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print the parsed job profile before scoring")

	batchCmd.MarkFlagRequired("jd")
	batchCmd.MarkFlagRequired("resumes")

	rootCmd.AddCommand(batchCmd)
}

// batchJSONEntry is one result row of the batch command's JSON output.
type batchJSONEntry struct {
	File       string            `json:"file"`
	Evaluation *types.Evaluation `json:"evaluation,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func runBatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	weights, err := loadWeights(batchWeightsPath)
	if err != nil {
		return err
	}
	engine, err := scoring.NewEngine(weights)
	if err != nil {
		return fmt.Errorf("failed to create scoring engine: %w", err)
	}

	client := newLLMClient(ctx, batchAPIKey)
	if client != nil {
		defer client.Close()
	}

	jd, err := loadJobProfile(ctx, client, batchJobArg, batchUseBrowser, batchVerbose)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if batchVerbose {
		printer.PrintProfile(jd)
	}

	entries, err := os.ReadDir(batchResumesDir)
	if err != nil {
		return fmt.Errorf("failed to read resumes directory: %w", err)
	}

	var profiles []*types.Profile
	labels := make(map[uuid.UUID]string)
	var loadFailures []observability.RankedEntry

	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		path := filepath.Join(batchResumesDir, entry.Name())
		profile, err := loadResumeProfile(ctx, client, path)
		if err != nil {
			// An unreadable file gets reported alongside scoring failures
			// instead of aborting the rest of the directory.
			loadFailures = append(loadFailures, observability.RankedEntry{Label: entry.Name(), Err: err})
			continue
		}
		profiles = append(profiles, profile)
		labels[profile.ID] = entry.Name()
	}
	if len(profiles) == 0 && len(loadFailures) == 0 {
		return fmt.Errorf("no resume files found in %s", batchResumesDir)
	}

	texts := make([]string, 0, len(profiles)+1)
	texts = append(texts, jd.RawText)
	for _, profile := range profiles {
		texts = append(texts, profile.RawText)
	}
	vectors, model := embedTexts(ctx, client, texts)

	embeddings := make(map[uuid.UUID][]float64, len(profiles))
	for i, profile := range profiles {
		embeddings[profile.ID] = vectors[i+1]
	}

	opts := &scoring.BatchOptions{
		Workers: batchWorkers,
		Progress: func(completed, total int, resumeID uuid.UUID) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", completed, total, labels[resumeID])
		},
	}
	results, err := engine.EvaluateBatch(ctx, profiles, jd, embeddings, vectors[0], opts)
	if err != nil {
		return fmt.Errorf("batch evaluation failed: %w", err)
	}

	display := make([]observability.RankedEntry, 0, len(results)+len(loadFailures))
	for _, result := range results {
		label := labels[result.ResumeID]
		if label == "" {
			label = result.ResumeID.String()
		}
		display = append(display, observability.RankedEntry{
			Label:      label,
			Evaluation: result.Evaluation,
			Err:        result.Err,
		})
	}
	display = append(display, loadFailures...)

	if batchJSON {
		rows := make([]batchJSONEntry, 0, len(display))
		for _, entry := range display {
			row := batchJSONEntry{File: entry.Label, Evaluation: entry.Evaluation}
			if entry.Err != nil {
				row.Error = entry.Err.Error()
			}
			rows = append(rows, row)
		}
		return printJSON(map[string]any{
			"embedding_model": model,
			"results":         rows,
			"count":           len(rows),
		})
	}

	printer.PrintRanking(display)
	return nil
}
