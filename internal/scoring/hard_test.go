package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-relevance/internal/types"
)

func intPtr(n int) *int {
	return &n
}

func resumeWithSkills(skills ...string) *types.Profile {
	return &types.Profile{
		ID:     uuid.New(),
		Kind:   types.KindResume,
		Name:   "test resume",
		Skills: &types.SkillSet{Required: skills},
	}
}

func jobWithSkills(required, preferred []string) *types.Profile {
	return &types.Profile{
		ID:     uuid.New(),
		Kind:   types.KindJob,
		Name:   "test job",
		Skills: &types.SkillSet{Required: required, Preferred: preferred},
	}
}

func TestScore_PartialRequiredCoverage(t *testing.T) {
	resume := resumeWithSkills("python", "sql", "pandas")
	jd := jobWithSkills([]string{"Python", "SQL", "Spark"}, []string{"Pandas"})

	result, err := Score(resume, jd)
	require.NoError(t, err)

	// 0.7*(2/3)*100 + 0.3*(1/1)*100 = 76.67
	assert.InDelta(t, 76.67, result.SkillScore, 0.01)
	assert.ElementsMatch(t, []string{"Python", "SQL"}, result.MatchedSkills)
	assert.Equal(t, []string{"Spark"}, result.MissingSkills)
}

func TestScore_EmptyRequiredSkillsIsFullScore(t *testing.T) {
	resume := resumeWithSkills("cobol")
	jd := jobWithSkills(nil, nil)

	result, err := Score(resume, jd)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.SkillScore)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
}

func TestScore_EmptyRequiredIgnoresPreferred(t *testing.T) {
	resume := resumeWithSkills("cobol")
	jd := jobWithSkills(nil, []string{"Rust", "Haskell"})

	result, err := Score(resume, jd)
	require.NoError(t, err)

	// No required skills at all, so the sub-score stays 100 even though
	// none of the preferred skills are present.
	assert.Equal(t, 100.0, result.SkillScore)
}

func TestScore_NoPreferredListed(t *testing.T) {
	resume := resumeWithSkills("go", "postgresql")
	jd := jobWithSkills([]string{"Go", "PostgreSQL"}, nil)

	result, err := Score(resume, jd)
	require.NoError(t, err)

	// Full required coverage and a vacuous preferred list => 100.
	assert.Equal(t, 100.0, result.SkillScore)
}

func TestScore_SynonymsCountAsMatches(t *testing.T) {
	resume := resumeWithSkills("ML", "k8s", "postgres")
	jd := jobWithSkills([]string{"Machine Learning", "Kubernetes", "PostgreSQL"}, nil)

	result, err := Score(resume, jd)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.SkillScore)
	assert.Empty(t, result.MissingSkills)
}

func TestScore_MissingSkillsUseJobSpelling(t *testing.T) {
	resume := resumeWithSkills("java")
	jd := jobWithSkills([]string{"Java", "Apache Spark"}, nil)

	result, err := Score(resume, jd)
	require.NoError(t, err)

	assert.Equal(t, []string{"Java"}, result.MatchedSkills)
	assert.Equal(t, []string{"Apache Spark"}, result.MissingSkills)
}

func TestScore_NilResume(t *testing.T) {
	_, err := Score(nil, jobWithSkills([]string{"Go"}, nil))

	var profileErr *IncompleteProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, "resume profile", profileErr.Field)
}

func TestScore_NilJob(t *testing.T) {
	_, err := Score(resumeWithSkills("go"), nil)

	var profileErr *IncompleteProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, "job profile", profileErr.Field)
}

func TestScore_NilSkillSections(t *testing.T) {
	resume := &types.Profile{ID: uuid.New(), Kind: types.KindResume}
	jd := jobWithSkills([]string{"Go"}, nil)

	_, err := Score(resume, jd)

	var profileErr *IncompleteProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, resume.ID, profileErr.ProfileID)
	assert.Equal(t, "skills", profileErr.Field)

	jdNoSkills := &types.Profile{ID: uuid.New(), Kind: types.KindJob}
	_, err = Score(resumeWithSkills("go"), jdNoSkills)

	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, jdNoSkills.ID, profileErr.ProfileID)
}

func TestScore_EmptySkillListIsNotIncomplete(t *testing.T) {
	resume := resumeWithSkills() // zero skills, but the section exists
	jd := jobWithSkills([]string{"Go"}, nil)

	result, err := Score(resume, jd)
	require.NoError(t, err)

	// 0.7*0 + 0.3*1 (vacuous preferred) = 30
	assert.InDelta(t, 30.0, result.SkillScore, 0.01)
	assert.Equal(t, []string{"Go"}, result.MissingSkills)
}

func TestScoreExperience_Rules(t *testing.T) {
	tests := []struct {
		name     string
		resume   *int
		required *int
		want     float64
	}{
		{"no requirement", intPtr(3), nil, 100},
		{"zero requirement", intPtr(3), intPtr(0), 100},
		{"negative requirement", intPtr(3), intPtr(-2), 100},
		{"unknown resume years", nil, intPtr(5), 0},
		{"partial ratio", intPtr(3), intPtr(5), 60},
		{"exact ratio", intPtr(5), intPtr(5), 100},
		{"overqualified capped", intPtr(12), intPtr(5), 100},
		{"both unknown", nil, nil, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreExperience(tt.resume, tt.required), 0.001)
		})
	}
}

func TestScore_ProjectCoverage(t *testing.T) {
	resume := resumeWithSkills("python")
	resume.Projects = []string{"ETL Pipeline"}
	jd := jobWithSkills([]string{"Python"}, nil)
	jd.Projects = []string{"etl pipeline", "recommendation system"}

	result, err := Score(resume, jd)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, result.ProjectScore, 0.01)
	assert.Equal(t, []string{"recommendation system"}, result.MissingProjects)
}

func TestScore_EmptyProjectRequirement(t *testing.T) {
	resume := resumeWithSkills("python")
	jd := jobWithSkills([]string{"Python"}, nil)

	result, err := Score(resume, jd)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.ProjectScore)
	assert.Empty(t, result.MissingProjects)
}

func TestScore_CertificationCoverage(t *testing.T) {
	resume := resumeWithSkills("python")
	resume.Certifications = []string{"AWS Certified Solutions Architect"}
	jd := jobWithSkills([]string{"Python"}, nil)
	jd.Certifications = []string{"aws certified solutions architect", "CKA"}

	result, err := Score(resume, jd)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, result.CertificationScore, 0.01)
	assert.Equal(t, []string{"CKA"}, result.MissingCertifications)
}

func TestAnalyzeGaps_ProjectsMissingElements(t *testing.T) {
	hard := &types.MatchResult{
		MissingSkills:         []string{"Spark"},
		MissingProjects:       []string{"recommendation system"},
		MissingCertifications: []string{"CKA"},
	}

	report := AnalyzeGaps(hard)

	assert.Equal(t, []string{"Spark"}, report.MissingSkills)
	assert.Equal(t, []string{"recommendation system"}, report.MissingProjects)
	assert.Equal(t, []string{"CKA"}, report.MissingCertifications)
}

func TestAnalyzeGaps_NilResult(t *testing.T) {
	report := AnalyzeGaps(nil)

	assert.Empty(t, report.MissingSkills)
	assert.Empty(t, report.MissingProjects)
	assert.Empty(t, report.MissingCertifications)
}
