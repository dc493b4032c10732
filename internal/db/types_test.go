package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-relevance/internal/types"
)

func TestContentTypeConstants(t *testing.T) {
	assert.Equal(t, "resume", ContentTypeResume)
	assert.Equal(t, "jd", ContentTypeJob)
}

func TestStringsOrEmpty(t *testing.T) {
	assert.Equal(t, []string{}, stringsOrEmpty(nil))
	assert.Equal(t, []string{}, stringsOrEmpty([]string{}))
	assert.Equal(t, []string{"go", "sql"}, stringsOrEmpty([]string{"go", "sql"}))
}

func TestSuggestionsOrEmpty(t *testing.T) {
	assert.Equal(t, []types.ImprovementSuggestion{}, suggestionsOrEmpty(nil))

	suggestions := []types.ImprovementSuggestion{
		{Category: "skills", Priority: "high", Suggestion: "Add evidence for Spark"},
	}
	assert.Equal(t, suggestions, suggestionsOrEmpty(suggestions))
}

func TestEmbeddingRecord(t *testing.T) {
	id := uuid.New()
	rec := &EmbeddingRecord{
		ContentType: ContentTypeResume,
		ContentID:   id,
		ModelName:   "text-embedding-004",
		Vector:      []float64{0.1, 0.2, 0.3},
	}

	assert.Equal(t, ContentTypeResume, rec.ContentType)
	assert.Equal(t, id, rec.ContentID)
	assert.Equal(t, "text-embedding-004", rec.ModelName)
	assert.Len(t, rec.Vector, 3)
}
