// Package suggest turns an evaluation's gap report into improvement
// suggestions. The LLM generator writes tailored advice; the template
// generator is the deterministic fallback when no provider is available.
package suggest

import (
	"context"

	"github.com/jonathan/resume-relevance/internal/types"
)

// Suggestion categories
const (
	CategorySkills         = "skills"
	CategoryProjects       = "projects"
	CategoryCertifications = "certifications"
	CategoryEducation      = "education"
	CategoryExperience     = "experience"
	CategoryGeneral        = "general"
)

// Suggestion priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Generator produces improvement suggestions for one evaluation. The job
// profile supplies context such as the role title; it may be nil.
type Generator interface {
	Generate(ctx context.Context, eval *types.Evaluation, job *types.Profile) ([]types.ImprovementSuggestion, error)
}

// Chain tries generators in order and returns the first successful result.
type Chain struct {
	generators []Generator
}

// NewChain builds a generator chain. Typical wiring is the LLM generator
// first with the template generator as backup.
func NewChain(generators ...Generator) *Chain {
	return &Chain{generators: generators}
}

// Generate runs each generator until one succeeds.
func (c *Chain) Generate(ctx context.Context, eval *types.Evaluation, job *types.Profile) ([]types.ImprovementSuggestion, error) {
	if len(c.generators) == 0 {
		return nil, &GenerationError{Message: "no generators configured"}
	}

	var lastErr error
	for _, g := range c.generators {
		suggestions, err := g.Generate(ctx, eval, job)
		if err == nil {
			return suggestions, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
