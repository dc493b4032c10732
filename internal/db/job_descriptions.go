package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveJobDescription inserts or updates a job description record.
// Timestamps on the record are populated from the database on return.
func (db *DB) SaveJobDescription(ctx context.Context, rec *JobRecord) error {
	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal job profile: %w", err)
	}

	err = db.pool.QueryRow(ctx, `
		INSERT INTO job_descriptions (id, title, source_url, profile, raw_text)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			source_url = EXCLUDED.source_url,
			profile = EXCLUDED.profile,
			raw_text = EXCLUDED.raw_text,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		rec.ID, rec.Title, rec.SourceURL, profileJSON, rec.RawText).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save job description: %w", err)
	}
	return nil
}

// GetJobDescriptionByID returns the job description with the given ID,
// or nil if it does not exist
func (db *DB) GetJobDescriptionByID(ctx context.Context, id uuid.UUID) (*JobRecord, error) {
	var rec JobRecord
	var profileJSON []byte

	err := db.pool.QueryRow(ctx, `
		SELECT id, title, source_url, profile, raw_text, created_at, updated_at
		FROM job_descriptions
		WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Title, &rec.SourceURL, &profileJSON, &rec.RawText, &rec.CreatedAt, &rec.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}

	if len(profileJSON) > 0 {
		_ = json.Unmarshal(profileJSON, &rec.Profile)
	}
	return &rec, nil
}

// GetJobDescriptionBySourceURL returns the most recently ingested job
// description for a URL, or nil if none exists. Used to avoid
// re-fetching postings that are already stored.
func (db *DB) GetJobDescriptionBySourceURL(ctx context.Context, url string) (*JobRecord, error) {
	var rec JobRecord
	var profileJSON []byte

	err := db.pool.QueryRow(ctx, `
		SELECT id, title, source_url, profile, raw_text, created_at, updated_at
		FROM job_descriptions
		WHERE source_url = $1
		ORDER BY created_at DESC
		LIMIT 1`, url).
		Scan(&rec.ID, &rec.Title, &rec.SourceURL, &profileJSON, &rec.RawText, &rec.CreatedAt, &rec.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job description by URL: %w", err)
	}

	if len(profileJSON) > 0 {
		_ = json.Unmarshal(profileJSON, &rec.Profile)
	}
	return &rec, nil
}

// ListJobDescriptions returns all stored job descriptions, newest
// first. Raw text is omitted to keep listings light.
func (db *DB) ListJobDescriptions(ctx context.Context) ([]*JobRecord, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, title, source_url, profile, created_at, updated_at
		FROM job_descriptions
		ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	var records []*JobRecord
	for rows.Next() {
		var rec JobRecord
		var profileJSON []byte
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.SourceURL, &profileJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		if len(profileJSON) > 0 {
			_ = json.Unmarshal(profileJSON, &rec.Profile)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// DeleteJobDescription removes a job description and its cached
// embeddings. Evaluations referencing it are removed by the foreign
// key cascade.
func (db *DB) DeleteJobDescription(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM job_descriptions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete job description: %w", err)
	}
	if _, err := db.pool.Exec(ctx, `
		DELETE FROM embeddings
		WHERE content_type = $1 AND content_id = $2`, ContentTypeJob, id); err != nil {
		return fmt.Errorf("failed to delete job description embeddings: %w", err)
	}
	return nil
}
