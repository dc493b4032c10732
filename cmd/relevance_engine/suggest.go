package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/db"
	"github.com/jonathan/resume-relevance/internal/observability"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Regenerate improvement suggestions for a stored evaluation",
	Long:  "Load an evaluation from the database, regenerate its improvement suggestions from the gap report, persist them, and print the result.",
	RunE:  runSuggest,
}

var (
	suggestEvaluationID string
	suggestDatabaseURL  string
	suggestAPIKey       string
	suggestJSON         bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestEvaluationID, "evaluation", "e", "", "Evaluation ID (required)")
	suggestCmd.Flags().StringVar(&suggestDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	suggestCmd.Flags().StringVar(&suggestAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Print suggestions as JSON instead of formatted output")

	suggestCmd.MarkFlagRequired("evaluation")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	evaluationID, err := uuid.Parse(suggestEvaluationID)
	if err != nil {
		return fmt.Errorf("invalid evaluation id: %w", err)
	}

	databaseURL := suggestDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	evaluation, err := database.GetEvaluationByID(ctx, evaluationID)
	if err != nil {
		return fmt.Errorf("failed to get evaluation: %w", err)
	}
	if evaluation == nil {
		return fmt.Errorf("evaluation not found: %s", evaluationID)
	}

	job, err := database.GetJobDescriptionByID(ctx, evaluation.JobID)
	if err != nil {
		return fmt.Errorf("failed to get job description: %w", err)
	}
	if job == nil || job.Profile == nil {
		return fmt.Errorf("job description not found: %s", evaluation.JobID)
	}
	job.Profile.ID = job.ID

	client := newLLMClient(ctx, suggestAPIKey)
	if client != nil {
		defer client.Close()
	}

	suggestions, err := newSuggester(client).Generate(ctx, evaluation, job.Profile)
	if err != nil {
		return fmt.Errorf("failed to generate suggestions: %w", err)
	}
	evaluation.ImprovementSuggestions = suggestions

	if err := database.UpdateEvaluationSuggestions(ctx, evaluation.ID, suggestions); err != nil {
		return fmt.Errorf("failed to persist suggestions: %w", err)
	}

	if suggestJSON {
		return printJSON(suggestions)
	}

	observability.NewPrinter(os.Stdout).PrintSuggestions(suggestions)
	return nil
}
