package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-relevance/internal/types"
)

func TestTemplateGenerator_LowFitCoversEveryGapCategory(t *testing.T) {
	eval := &types.Evaluation{
		RelevanceScore:        40,
		FitVerdict:            types.VerdictLow,
		MissingSkills:         []string{"spark", "airflow"},
		MissingProjects:       []string{"data pipeline"},
		MissingCertifications: []string{"cka"},
	}
	job := &types.Profile{Kind: types.KindJob, Name: "Senior Data Engineer"}

	suggestions, err := NewTemplateGenerator().Generate(context.Background(), eval, job)
	require.NoError(t, err)
	require.Len(t, suggestions, 4)

	skills := suggestions[0]
	assert.Equal(t, CategorySkills, skills.Category)
	assert.Equal(t, PriorityHigh, skills.Priority)
	assert.Contains(t, skills.Suggestion, "spark")
	assert.Len(t, skills.SpecificActions, 2)

	projects := suggestions[1]
	assert.Equal(t, CategoryProjects, projects.Category)
	assert.Equal(t, PriorityHigh, projects.Priority)

	certs := suggestions[2]
	assert.Equal(t, CategoryCertifications, certs.Category)
	// Certifications sit one band below the base priority.
	assert.Equal(t, PriorityMedium, certs.Priority)

	general := suggestions[3]
	assert.Equal(t, CategoryGeneral, general.Category)
	assert.Equal(t, PriorityHigh, general.Priority)
	assert.Contains(t, general.Suggestion, "Senior Data Engineer role")
}

func TestTemplateGenerator_MediumBandLowersCertPriority(t *testing.T) {
	eval := &types.Evaluation{
		RelevanceScore:        60,
		FitVerdict:            types.VerdictMedium,
		MissingCertifications: []string{"aws certified developer"},
	}

	suggestions, err := NewTemplateGenerator().Generate(context.Background(), eval, nil)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, CategoryCertifications, suggestions[0].Category)
	assert.Equal(t, PriorityLow, suggestions[0].Priority)
}

func TestTemplateGenerator_HighFitWithoutGapsIsQuiet(t *testing.T) {
	eval := &types.Evaluation{
		RelevanceScore: 92,
		FitVerdict:     types.VerdictHigh,
	}

	suggestions, err := NewTemplateGenerator().Generate(context.Background(), eval, nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestTemplateGenerator_NilJobUsesGenericRoleName(t *testing.T) {
	eval := &types.Evaluation{
		RelevanceScore: 30,
		FitVerdict:     types.VerdictLow,
	}

	suggestions, err := NewTemplateGenerator().Generate(context.Background(), eval, nil)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Contains(t, suggestions[0].Suggestion, "target role")
}

func TestTemplateGenerator_LongSkillListTruncates(t *testing.T) {
	eval := &types.Evaluation{
		RelevanceScore: 45,
		FitVerdict:     types.VerdictLow,
		MissingSkills:  []string{"a", "b", "c", "d", "e", "f", "g"},
	}

	suggestions, err := NewTemplateGenerator().Generate(context.Background(), eval, nil)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions[0].Suggestion, ", ...")
	assert.Len(t, suggestions[0].SpecificActions, 3)
}

func TestTemplateGenerator_NilEvaluation(t *testing.T) {
	_, err := NewTemplateGenerator().Generate(context.Background(), nil, nil)
	require.Error(t, err)

	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestBasePriority_Bands(t *testing.T) {
	assert.Equal(t, PriorityHigh, basePriority(0))
	assert.Equal(t, PriorityHigh, basePriority(49.999))
	assert.Equal(t, PriorityMedium, basePriority(50))
	assert.Equal(t, PriorityMedium, basePriority(74.999))
	assert.Equal(t, PriorityLow, basePriority(75))
	assert.Equal(t, PriorityLow, basePriority(100))
}
