package scoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/types"
)

// Verdict thresholds, inclusive lower bounds.
const (
	verdictHighMin   = 75.0
	verdictMediumMin = 50.0
)

// Engine combines hard-match and semantic-match scores under an immutable
// weight configuration. The configuration is validated once at
// construction; Engine holds no other state and is safe for concurrent
// use.
type Engine struct {
	weights types.WeightConfig
}

// NewEngine validates the weight configuration and returns an Engine.
// Invalid weights fail here, at startup, never per evaluation.
func NewEngine(weights types.WeightConfig) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, &InvalidConfigurationError{Message: "weight configuration rejected", Cause: err}
	}
	return &Engine{weights: weights}, nil
}

// Weights returns the engine's weight configuration.
func (e *Engine) Weights() types.WeightConfig {
	return e.weights
}

// Aggregate combines the five hard sub-scores and the semantic score into
// the final relevance score and its verdict.
func (e *Engine) Aggregate(hard *types.MatchResult, semanticScore float64) (float64, types.Verdict) {
	relevance := clampScore(e.HardTotal(hard)*e.weights.HardMatch + semanticScore*e.weights.SemanticMatch)
	return relevance, verdictFor(relevance)
}

// HardTotal returns the weighted combination of the five hard sub-scores.
func (e *Engine) HardTotal(hard *types.MatchResult) float64 {
	w := e.weights
	return clampScore(hard.SkillScore*w.Skills +
		hard.EducationScore*w.Education +
		hard.ExperienceScore*w.Experience +
		hard.ProjectScore*w.Projects +
		hard.CertificationScore*w.Certifications)
}

// verdictFor maps a relevance score to its fit verdict. Boundary values
// map to the higher band.
func verdictFor(score float64) types.Verdict {
	switch {
	case score >= verdictHighMin:
		return types.VerdictHigh
	case score >= verdictMediumMin:
		return types.VerdictMedium
	default:
		return types.VerdictLow
	}
}

// Evaluate scores a single resume/job pair end to end: hard match,
// semantic match over the supplied vectors, aggregation, and gap
// projection. A nil or empty resume or job vector degrades the evaluation
// (semantic score 0, Degraded flag set) rather than failing it; a
// dimension mismatch between two present vectors is an error.
func (e *Engine) Evaluate(resume, jd *types.Profile, resumeVector, jdVector []float64) (*types.Evaluation, error) {
	hard, err := Score(resume, jd)
	if err != nil {
		return nil, err
	}

	semantic := 0.0
	degraded := false
	if len(resumeVector) == 0 || len(jdVector) == 0 {
		degraded = true
	} else {
		semantic, err = Similarity(resumeVector, jdVector)
		if err != nil {
			return nil, err
		}
	}

	relevance, verdict := e.Aggregate(hard, semantic)
	hardTotal := e.HardTotal(hard)

	return &types.Evaluation{
		ID:                    uuid.New(),
		ResumeID:              resume.ID,
		JobID:                 jd.ID,
		RelevanceScore:        relevance,
		FitVerdict:            verdict,
		HardMatchScore:        hardTotal,
		SemanticMatchScore:    semantic,
		MissingSkills:         hard.MissingSkills,
		MissingProjects:       hard.MissingProjects,
		MissingCertifications: hard.MissingCertifications,
		Degraded:              degraded,
		CreatedAt:             time.Now().UTC(),
	}, nil
}
