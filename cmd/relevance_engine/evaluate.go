package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-relevance/internal/config"
	"github.com/jonathan/resume-relevance/internal/llm"
	"github.com/jonathan/resume-relevance/internal/observability"
	"github.com/jonathan/resume-relevance/internal/scoring"
	"github.com/jonathan/resume-relevance/internal/suggest"
	"github.com/jonathan/resume-relevance/internal/types"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score one resume against one job description",
	Long:  "Parse a resume file and a job description (file or URL), score the pair, and print the evaluation with its gap report.",
	RunE:  runEvaluate,
}

var (
	evalResumePath  string
	evalJobArg      string
	evalWeightsPath string
	evalSuggest     bool
	evalJSON        bool
	evalAPIKey      string
	evalUseBrowser  bool
	evalVerbose     bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalResumePath, "resume", "r", "", "Path to resume text file (required)")
	evaluateCmd.Flags().StringVarP(&evalJobArg, "jd", "j", "", "Job description file path or URL (required)")
	evaluateCmd.Flags().StringVar(&evalWeightsPath, "weights", "", "Path to config.json with a custom weight table")
	evaluateCmd.Flags().BoolVar(&evalSuggest, "suggest", false, "Attach improvement suggestions to the evaluation")
	evaluateCmd.Flags().BoolVar(&evalJSON, "json", false, "Print the evaluation as JSON instead of formatted output")
	evaluateCmd.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	evaluateCmd.Flags().BoolVar(&evalUseBrowser, "use-browser", false, "Use headless browser for SPA job sites (requires Chrome)")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print parsed profiles before scoring")

	evaluateCmd.MarkFlagRequired("resume")
	evaluateCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	weights, err := loadWeights(evalWeightsPath)
	if err != nil {
		return err
	}
	engine, err := scoring.NewEngine(weights)
	if err != nil {
		return fmt.Errorf("failed to create scoring engine: %w", err)
	}

	client := newLLMClient(ctx, evalAPIKey)
	if client != nil {
		defer client.Close()
	}

	resume, err := loadResumeProfile(ctx, client, evalResumePath)
	if err != nil {
		return err
	}
	jd, err := loadJobProfile(ctx, client, evalJobArg, evalUseBrowser, evalVerbose)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if evalVerbose {
		printer.PrintProfile(resume)
		printer.PrintProfile(jd)
	}

	vectors, model := embedTexts(ctx, client, []string{resume.RawText, jd.RawText})

	evaluation, err := engine.Evaluate(resume, jd, vectors[0], vectors[1])
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evalSuggest {
		suggester := newSuggester(client)
		suggestions, err := suggester.Generate(ctx, evaluation, jd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to generate suggestions: %v\n", err)
		} else {
			evaluation.ImprovementSuggestions = suggestions
		}
	}

	if evalJSON {
		return printJSON(evaluation)
	}

	printer.PrintEvaluation(evaluation)
	if evalSuggest {
		printer.PrintSuggestions(evaluation.ImprovementSuggestions)
	}
	if evalVerbose {
		fmt.Fprintf(os.Stdout, "Embedding model: %s\n", model)
	}
	return nil
}

// loadWeights resolves the weight table: a config file when given, the
// standard table otherwise.
func loadWeights(path string) (types.WeightConfig, error) {
	if path == "" {
		return types.DefaultWeightConfig(), nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return types.WeightConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.WeightConfig{}, err
	}
	return cfg.EffectiveWeights(), nil
}

// newSuggester builds the suggestion chain: LLM first when available, the
// template generator as the always-working fallback.
func newSuggester(client llm.Client) suggest.Generator {
	if client != nil {
		return suggest.NewChain(suggest.NewLLMGenerator(client), suggest.NewTemplateGenerator())
	}
	return suggest.NewChain(suggest.NewTemplateGenerator())
}

// printJSON writes indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
