package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-relevance/internal/types"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

Summary:
Data engineer with 6 years of experience building batch and streaming pipelines.

Skills:
Python, SQL, Spark, Airflow, Docker, Kubernetes, CI/CD

Experience:
Senior Data Engineer at Initech
- Built ETL pipelines moving 2TB per day
- 3 years leading a team of four

Projects:
- Fraud detection pipeline: streaming feature store with Kafka
- Recommendation engine

Education:
Bachelor of Science in Computer Science, State University, 2016

Certifications:
- AWS Certified Solutions Architect
`

const sampleJob = `Senior Machine Learning Engineer

About the role:
We build ranking systems for a marketplace.

Requirements:
- 3-5 years of experience in production ML
- Strong Python and SQL
- Experience with TensorFlow or PyTorch
- Bachelor's degree in Computer Science or related field

Nice to have:
- Kubernetes
- AWS
`

func TestExtractResumeProfile_FullResume(t *testing.T) {
	profile := ExtractResumeProfile(sampleResume)
	require.NotNil(t, profile)

	assert.Equal(t, types.KindResume, profile.Kind)
	assert.NotEqual(t, "", profile.ID.String())
	assert.Equal(t, "Jane Doe", profile.Name)

	require.NotNil(t, profile.Skills)
	assert.ElementsMatch(t,
		[]string{"python", "sql", "aws", "docker", "kubernetes", "ci cd", "etl", "spark", "airflow", "kafka"},
		profile.Skills.Required)
	assert.Empty(t, profile.Skills.Preferred)

	require.NotNil(t, profile.ExperienceYears)
	assert.Equal(t, 6, *profile.ExperienceYears)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Bachelor", profile.Education[0].Degree)
	assert.Equal(t, "Computer Science", profile.Education[0].Field)

	assert.Equal(t, []string{"Fraud detection pipeline", "Recommendation engine"}, profile.Projects)
	// The bare "aws certified" keyword hit folds into the full line.
	assert.Equal(t, []string{"aws certified solutions architect"}, profile.Certifications)
	assert.Equal(t, sampleResume, profile.RawText)
}

func TestExtractJobProfile_SectionScopedSkills(t *testing.T) {
	profile := ExtractJobProfile(sampleJob)
	require.NotNil(t, profile)

	assert.Equal(t, types.KindJob, profile.Kind)
	assert.Equal(t, "Senior Machine Learning Engineer", profile.Name)

	require.NotNil(t, profile.Skills)
	// Skills named only in the nice-to-have section must not leak into the
	// required list.
	assert.ElementsMatch(t,
		[]string{"python", "sql", "tensorflow", "pytorch", "ml"},
		profile.Skills.Required)
	assert.ElementsMatch(t, []string{"aws", "kubernetes"}, profile.Skills.Preferred)

	require.NotNil(t, profile.ExperienceYears)
	// "3-5 years" resolves to the lower bound.
	assert.Equal(t, 3, *profile.ExperienceYears)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Bachelor's", profile.Education[0].Degree)
	assert.Equal(t, "Computer Science", profile.Education[0].Field)
}

func TestExtractJobProfile_NoSectionsFallsBackToWholeText(t *testing.T) {
	text := "Looking for a Go developer. Docker and PostgreSQL a plus. 4+ years of experience required."

	profile := ExtractJobProfile(text)
	require.NotNil(t, profile)

	require.NotNil(t, profile.Skills)
	assert.ElementsMatch(t, []string{"go", "docker", "postgresql"}, profile.Skills.Required)
	assert.Empty(t, profile.Skills.Preferred)

	require.NotNil(t, profile.ExperienceYears)
	assert.Equal(t, 4, *profile.ExperienceYears)
	assert.NotEmpty(t, profile.Name)
}

func TestContainsKeyword_TokenBoundaries(t *testing.T) {
	tests := []struct {
		text    string
		keyword string
		want    bool
	}{
		{"go developer", "go", true},
		{"django templates", "go", false},
		{"learning good habits", "go", false},
		{"c++ and c#", "c++", true},
		{"c++ and c#", "c#", true},
		{"javascript only", "java", false},
		{"java and javascript", "java", true},
		{"node.js services", "node.js", true},
		{"spark", "spark", true},
		{"pyspark jobs", "spark", false},
		{"ci/cd pipelines", "ci/cd", true},
	}

	for _, tt := range tests {
		got := containsKeyword(tt.text, tt.keyword)
		assert.Equal(t, tt.want, got, "text %q keyword %q", tt.text, tt.keyword)
	}
}

func TestExtractSkills_CaseInsensitive(t *testing.T) {
	skills := extractSkills("PYTHON, Sql, Machine Learning")
	assert.ElementsMatch(t, []string{"python", "sql", "machine learning"}, skills)
}

func TestExtractResumeYears_Rules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{"simple claim", "6 years of experience with Python", intPtrParsing(6)},
		{"plus suffix", "10+ years of experience", intPtrParsing(10)},
		{"range takes lower bound", "3-5 years of experience", intPtrParsing(3)},
		{"largest claim wins", "5 years of experience in backend. 8 years of professional experience overall.", intPtrParsing(8)},
		{"experience trailer", "Experience: 4 years", intPtrParsing(4)},
		{"no claim", "worked on many projects over the years", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractResumeYears(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestExtractRequiredYears_FirstMatchWins(t *testing.T) {
	years := extractRequiredYears("2+ years of experience required. 10 years of experience preferred.")
	require.NotNil(t, years)
	assert.Equal(t, 2, *years)
}

func TestExtractRequiredYears_WordRange(t *testing.T) {
	years := extractRequiredYears("between 4 to 6 years of experience")
	require.NotNil(t, years)
	assert.Equal(t, 4, *years)
}

func TestExtractRequiredYears_NoneStated(t *testing.T) {
	assert.Nil(t, extractRequiredYears("we value curiosity and ownership"))
}

func TestExtractEducation_DegreeForms(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantDegree string
		wantField  string
	}{
		{"full degree with in clause", "Bachelor of Science in Computer Science, MIT, 2018", "Bachelor", "Computer Science"},
		{"of clause names the field", "Master of Business Administration", "Master", "Business Administration"},
		{"abbreviation with known field", "B.S. Computer Science", "B.S", "computer science"},
		{"phd", "PhD in Machine Learning", "PhD", "Machine Learning"},
		{"possessive with trailer", "Associate's degree in Data Science from a community college", "Associate's", "Data Science"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := extractEducation(tt.line)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantDegree, entries[0].Degree)
			assert.Equal(t, tt.wantField, entries[0].Field)
		})
	}
}

func TestExtractEducation_NoDegree(t *testing.T) {
	assert.Empty(t, extractEducation("self-taught programmer with a bootcamp background"))
}

func TestExtractEducation_DropsDuplicates(t *testing.T) {
	text := "Bachelor of Science in Computer Science\nBachelor of Science in Computer Science"
	entries := extractEducation(text)
	assert.Len(t, entries, 1)
}

func TestExtractCandidateName_SkipsHeaderAndContactLines(t *testing.T) {
	text := "RESUME\nJohn Q. Public\njohn@example.com"
	assert.Equal(t, "John Q. Public", extractCandidateName(text))
}

func TestExtractCandidateName_NoPlausibleLine(t *testing.T) {
	text := "john@example.com\n555-123-4567"
	assert.Equal(t, "", extractCandidateName(text))
}

// intPtrParsing avoids clashing with helpers in other packages.
func intPtrParsing(n int) *int {
	return &n
}
