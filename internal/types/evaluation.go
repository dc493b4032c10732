package types

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the discretized fit outcome derived from the relevance score.
type Verdict string

// Fit verdicts
const (
	VerdictHigh   Verdict = "High"
	VerdictMedium Verdict = "Medium"
	VerdictLow    Verdict = "Low"
)

// MatchResult is the output of the hard-match scorer. Every sub-score is
// bounded [0,100]. MatchedSkills and MissingSkills partition the job's
// required skills.
type MatchResult struct {
	SkillScore            float64  `json:"skill_score"`
	EducationScore        float64  `json:"education_score"`
	ExperienceScore       float64  `json:"experience_score"`
	ProjectScore          float64  `json:"project_score"`
	CertificationScore    float64  `json:"certification_score"`
	MatchedSkills         []string `json:"matched_skills"`
	MissingSkills         []string `json:"missing_skills"`
	MissingProjects       []string `json:"missing_projects"`
	MissingCertifications []string `json:"missing_certifications"`
}

// GapReport itemizes what a resume lacks relative to a job description.
type GapReport struct {
	MissingSkills         []string `json:"missing_skills"`
	MissingProjects       []string `json:"missing_projects"`
	MissingCertifications []string `json:"missing_certifications"`
}

// ImprovementSuggestion is one piece of actionable advice derived from a
// gap report.
type ImprovementSuggestion struct {
	Category        string   `json:"category"`
	Priority        string   `json:"priority"`
	Suggestion      string   `json:"suggestion"`
	SpecificActions []string `json:"specific_actions,omitempty"`
}

// Evaluation is the final artifact of scoring one resume against one job
// description. Evaluations are append-only: a re-evaluation produces a new
// record rather than updating an old one.
type Evaluation struct {
	ID                     uuid.UUID               `json:"id"`
	ResumeID               uuid.UUID               `json:"resume_id"`
	JobID                  uuid.UUID               `json:"jd_id"`
	RelevanceScore         float64                 `json:"relevance_score"`
	FitVerdict             Verdict                 `json:"fit_verdict"`
	HardMatchScore         float64                 `json:"hard_match_score"`
	SemanticMatchScore     float64                 `json:"semantic_match_score"`
	MissingSkills          []string                `json:"missing_skills"`
	MissingProjects        []string                `json:"missing_projects"`
	MissingCertifications  []string                `json:"missing_certifications"`
	ImprovementSuggestions []ImprovementSuggestion `json:"improvement_suggestions,omitempty"`
	Degraded               bool                    `json:"degraded,omitempty"`
	CreatedAt              time.Time               `json:"created_at,omitempty"`
}

// Gaps projects the evaluation's missing elements into a GapReport.
func (e *Evaluation) Gaps() GapReport {
	return GapReport{
		MissingSkills:         e.MissingSkills,
		MissingProjects:       e.MissingProjects,
		MissingCertifications: e.MissingCertifications,
	}
}
