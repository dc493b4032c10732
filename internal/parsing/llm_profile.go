package parsing

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jonathan/resume-relevance/internal/llm"
	"github.com/jonathan/resume-relevance/internal/schemas"
	"github.com/jonathan/resume-relevance/internal/types"
)

// resumeExtraction mirrors the JSON document the resume extraction prompt
// asks the model to produce.
type resumeExtraction struct {
	Name            string           `json:"name"`
	Skills          []string         `json:"skills"`
	Education       []educationEntry `json:"education"`
	ExperienceYears *float64         `json:"experience_years"`
	Projects        []string         `json:"projects"`
	Certifications  []string         `json:"certifications"`
}

// jobExtraction mirrors the JSON document the job extraction prompt asks
// the model to produce.
type jobExtraction struct {
	Title           string           `json:"title"`
	RequiredSkills  []string         `json:"required_skills"`
	PreferredSkills []string         `json:"preferred_skills"`
	Education       []educationEntry `json:"education"`
	ExperienceYears *float64         `json:"experience_years"`
	Projects        []string         `json:"projects"`
	Certifications  []string         `json:"certifications"`
}

type educationEntry struct {
	Degree string `json:"degree"`
	Field  string `json:"field"`
}

// ParseResumeProfile extracts a structured resume profile from cleaned
// resume text using the LLM client. The response is validated against the
// resume profile schema before being accepted.
func ParseResumeProfile(ctx context.Context, client llm.Client, cleanedText string) (*types.Profile, error) {
	if client == nil {
		return nil, &APICallError{Message: "LLM client is required"}
	}

	prompt := llm.BuildExtractionPrompt(llm.ResumeProfileSchema(), cleanedText)

	// Resumes are long and loosely structured; use the standard tier.
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate resume extraction",
			Cause:   err,
		}
	}

	if err := schemas.ValidateResumeProfile(raw); err != nil {
		return nil, &ParseError{
			Message: "resume extraction failed schema validation",
			Cause:   err,
		}
	}

	var ext resumeExtraction
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		return nil, &ParseError{
			Message: "failed to parse resume extraction JSON",
			Cause:   err,
		}
	}

	profile := &types.Profile{
		ID:              uuid.New(),
		Kind:            types.KindResume,
		Name:            ext.Name,
		Skills:          &types.SkillSet{Required: ext.Skills},
		Projects:        ext.Projects,
		Education:       educationFromEntries(ext.Education),
		Certifications:  ext.Certifications,
		ExperienceYears: yearsFromFloat(ext.ExperienceYears),
		RawText:         cleanedText,
	}

	if err := checkExtractedProfile(profile); err != nil {
		return nil, err
	}

	NormalizeProfile(profile)
	return profile, nil
}

// ParseJobProfile extracts a structured job profile from cleaned job
// posting text using the LLM client.
func ParseJobProfile(ctx context.Context, client llm.Client, cleanedText string) (*types.Profile, error) {
	if client == nil {
		return nil, &APICallError{Message: "LLM client is required"}
	}

	prompt := llm.BuildExtractionPrompt(llm.JobProfileSchema(), cleanedText)

	// Postings are short and the target schema is flat; the lite tier is
	// enough.
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate job extraction",
			Cause:   err,
		}
	}

	if err := schemas.ValidateJobProfile(raw); err != nil {
		return nil, &ParseError{
			Message: "job extraction failed schema validation",
			Cause:   err,
		}
	}

	var ext jobExtraction
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		return nil, &ParseError{
			Message: "failed to parse job extraction JSON",
			Cause:   err,
		}
	}

	profile := &types.Profile{
		ID:   uuid.New(),
		Kind: types.KindJob,
		Name: ext.Title,
		Skills: &types.SkillSet{
			Required:  ext.RequiredSkills,
			Preferred: ext.PreferredSkills,
		},
		Projects:        ext.Projects,
		Education:       educationFromEntries(ext.Education),
		Certifications:  ext.Certifications,
		ExperienceYears: yearsFromFloat(ext.ExperienceYears),
		RawText:         cleanedText,
	}

	if err := checkExtractedProfile(profile); err != nil {
		return nil, err
	}

	NormalizeProfile(profile)
	return profile, nil
}

// educationFromEntries converts extraction DTOs to profile entries,
// skipping entries without a degree.
func educationFromEntries(entries []educationEntry) []types.Education {
	if len(entries) == 0 {
		return nil
	}
	out := make([]types.Education, 0, len(entries))
	for _, e := range entries {
		if e.Degree == "" {
			continue
		}
		out = append(out, types.Education{Degree: e.Degree, Field: e.Field})
	}
	return out
}

// yearsFromFloat truncates a fractional years value toward zero. Half
// years round down, matching the lower-bound rule for ranges.
func yearsFromFloat(f *float64) *int {
	if f == nil {
		return nil
	}
	years := int(*f)
	return &years
}

// checkExtractedProfile applies sanity rules the schema cannot express.
func checkExtractedProfile(p *types.Profile) error {
	if p.ExperienceYears != nil && *p.ExperienceYears > 60 {
		return &ValidationError{
			Field:   "experience_years",
			Message: "implausible years of experience, extraction likely picked up a calendar year",
		}
	}
	return nil
}
