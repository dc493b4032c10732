// Package db provides PostgreSQL persistence for resumes, job
// descriptions, evaluations, and cached embeddings.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schemaStatements holds the DDL for every table the engine uses. Each
// statement is idempotent so EnsureSchema can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS resumes (
		id UUID PRIMARY KEY,
		candidate_name TEXT NOT NULL DEFAULT '',
		profile JSONB NOT NULL,
		raw_text TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_descriptions (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		source_url TEXT,
		profile JSONB NOT NULL,
		raw_text TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_descriptions_source_url
		ON job_descriptions (source_url) WHERE source_url IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS evaluations (
		id UUID PRIMARY KEY,
		resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
		jd_id UUID NOT NULL REFERENCES job_descriptions(id) ON DELETE CASCADE,
		relevance_score DOUBLE PRECISION NOT NULL,
		fit_verdict TEXT NOT NULL,
		hard_match_score DOUBLE PRECISION NOT NULL,
		semantic_match_score DOUBLE PRECISION NOT NULL,
		missing_skills JSONB NOT NULL DEFAULT '[]',
		missing_projects JSONB NOT NULL DEFAULT '[]',
		missing_certifications JSONB NOT NULL DEFAULT '[]',
		improvement_suggestions JSONB NOT NULL DEFAULT '[]',
		degraded BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_jd_score
		ON evaluations (jd_id, relevance_score DESC, resume_id ASC)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_resume
		ON evaluations (resume_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS embeddings (
		content_type TEXT NOT NULL,
		content_id UUID NOT NULL,
		model_name TEXT NOT NULL,
		vector JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (content_type, content_id, model_name)
	)`,
}

// EnsureSchema creates any missing tables and indexes
func (db *DB) EnsureSchema(ctx context.Context) error {
	for i := 0; i < len(schemaStatements); i++ {
		if _, err := db.pool.Exec(ctx, schemaStatements[i]); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
