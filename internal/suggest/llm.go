package suggest

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/resume-relevance/internal/llm"
	"github.com/jonathan/resume-relevance/internal/prompts"
	"github.com/jonathan/resume-relevance/internal/schemas"
	"github.com/jonathan/resume-relevance/internal/types"
)

// suggestionsDoc mirrors the JSON document the suggestion prompt asks the
// model to produce.
type suggestionsDoc struct {
	Suggestions []suggestionEntry `json:"suggestions"`
}

type suggestionEntry struct {
	Category        string   `json:"category"`
	Priority        string   `json:"priority"`
	Suggestion      string   `json:"suggestion"`
	SpecificActions []string `json:"specific_actions"`
}

// LLMGenerator writes tailored suggestions with the LLM. Responses are
// validated against the suggestions schema before being accepted.
type LLMGenerator struct {
	client llm.Client
}

// NewLLMGenerator wraps an LLM client.
func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{client: client}
}

// Generate prompts the model with the evaluation's gap report.
func (g *LLMGenerator) Generate(ctx context.Context, eval *types.Evaluation, job *types.Profile) ([]types.ImprovementSuggestion, error) {
	if g.client == nil {
		return nil, &GenerationError{Message: "LLM client is required"}
	}
	if eval == nil {
		return nil, &GenerationError{Message: "evaluation is required"}
	}

	template := prompts.MustGet("suggest.json", "generate-suggestions")
	prompt := prompts.Format(template, map[string]string{
		"JobTitle":              roleTitle(job),
		"RelevanceScore":        strconv.FormatFloat(eval.RelevanceScore, 'f', 1, 64),
		"FitVerdict":            string(eval.FitVerdict),
		"MissingSkills":         orNone(eval.MissingSkills),
		"MissingProjects":       orNone(eval.MissingProjects),
		"MissingCertifications": orNone(eval.MissingCertifications),
	})

	// Suggestion writing benefits from the strongest tier.
	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &GenerationError{
			Message: "failed to generate suggestions",
			Cause:   err,
		}
	}

	if err := schemas.ValidateSuggestions(raw); err != nil {
		return nil, &GenerationError{
			Message: "suggestions failed schema validation",
			Cause:   err,
		}
	}

	var doc suggestionsDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &GenerationError{
			Message: "failed to parse suggestions JSON",
			Cause:   err,
		}
	}

	suggestions := make([]types.ImprovementSuggestion, 0, len(doc.Suggestions))
	for _, entry := range doc.Suggestions {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Category:        entry.Category,
			Priority:        entry.Priority,
			Suggestion:      entry.Suggestion,
			SpecificActions: entry.SpecificActions,
		})
	}
	return suggestions, nil
}

// roleTitle names the job for the prompt.
func roleTitle(job *types.Profile) string {
	if job != nil && job.Name != "" {
		return job.Name
	}
	return "unknown"
}

// orNone renders a gap list for the prompt.
func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
