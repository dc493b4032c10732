package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-relevance/internal/types"
)

// maxListedGaps caps how many gap items appear in one suggestion line.
const maxListedGaps = 5

// TemplateGenerator produces suggestions from fixed per-category
// templates. It never fails on a valid evaluation, which makes it the
// terminal generator in a chain.
type TemplateGenerator struct{}

// NewTemplateGenerator returns the deterministic fallback generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate derives one suggestion per gap category plus a general note for
// low-fit evaluations. Priorities follow the relevance score band.
func (g *TemplateGenerator) Generate(_ context.Context, eval *types.Evaluation, job *types.Profile) ([]types.ImprovementSuggestion, error) {
	if eval == nil {
		return nil, &GenerationError{Message: "evaluation is required"}
	}

	base := basePriority(eval.RelevanceScore)
	suggestions := make([]types.ImprovementSuggestion, 0, 4)

	if len(eval.MissingSkills) > 0 {
		actions := make([]string, 0, 3)
		for i := 0; i < len(eval.MissingSkills) && i < 3; i++ {
			actions = append(actions, fmt.Sprintf("Build or extend a project that exercises %s", eval.MissingSkills[i]))
		}
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Category:        CategorySkills,
			Priority:        base,
			Suggestion:      fmt.Sprintf("Add evidence for the missing required skills: %s.", listPreview(eval.MissingSkills)),
			SpecificActions: actions,
		})
	}

	if len(eval.MissingProjects) > 0 {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Category:   CategoryProjects,
			Priority:   base,
			Suggestion: fmt.Sprintf("Show project work covering: %s.", listPreview(eval.MissingProjects)),
			SpecificActions: []string{
				"Add a bullet per project describing scope, stack, and measurable outcome",
			},
		})
	}

	if len(eval.MissingCertifications) > 0 {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Category:   CategoryCertifications,
			Priority:   stepDown(base),
			Suggestion: fmt.Sprintf("Consider pursuing: %s.", listPreview(eval.MissingCertifications)),
			SpecificActions: []string{
				"Schedule the most relevant certification exam within the next quarter",
			},
		})
	}

	if eval.FitVerdict == types.VerdictLow {
		suggestions = append(suggestions, types.ImprovementSuggestion{
			Category:   CategoryGeneral,
			Priority:   PriorityHigh,
			Suggestion: fmt.Sprintf("Tailor the resume summary and top bullets to the %s before applying.", roleName(job)),
		})
	}

	return suggestions, nil
}

// basePriority maps a relevance score band to a priority.
func basePriority(score float64) string {
	switch {
	case score < 50:
		return PriorityHigh
	case score < 75:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// stepDown lowers a priority one band.
func stepDown(priority string) string {
	switch priority {
	case PriorityHigh:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// listPreview joins up to maxListedGaps items and marks truncation.
func listPreview(items []string) string {
	if len(items) <= maxListedGaps {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:maxListedGaps], ", ") + ", ..."
}

// roleName names the job for suggestion text.
func roleName(job *types.Profile) string {
	if job != nil && job.Name != "" {
		return job.Name + " role"
	}
	return "target role"
}
