package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-relevance/internal/types"
)

// Content types for the embeddings table
const (
	ContentTypeResume = "resume"
	ContentTypeJob    = "jd"
)

// ResumeRecord is a stored resume with its extracted profile
type ResumeRecord struct {
	ID            uuid.UUID      `json:"id"`
	CandidateName string         `json:"candidate_name"`
	Profile       *types.Profile `json:"profile"`
	RawText       string         `json:"raw_text,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// JobRecord is a stored job description with its extracted profile.
// SourceURL is set only for postings ingested from a URL.
type JobRecord struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	SourceURL *string        `json:"source_url,omitempty"`
	Profile   *types.Profile `json:"profile"`
	RawText   string         `json:"raw_text,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// EmbeddingRecord is a cached embedding vector keyed by the content it
// was computed from and the model that produced it
type EmbeddingRecord struct {
	ContentType string    `json:"content_type"`
	ContentID   uuid.UUID `json:"content_id"`
	ModelName   string    `json:"model_name"`
	Vector      []float64 `json:"vector"`
	CreatedAt   time.Time `json:"created_at"`
}
