package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResume inserts or updates a resume record. Timestamps on the
// record are populated from the database on return.
func (db *DB) SaveResume(ctx context.Context, rec *ResumeRecord) error {
	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal resume profile: %w", err)
	}

	err = db.pool.QueryRow(ctx, `
		INSERT INTO resumes (id, candidate_name, profile, raw_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			candidate_name = EXCLUDED.candidate_name,
			profile = EXCLUDED.profile,
			raw_text = EXCLUDED.raw_text,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		rec.ID, rec.CandidateName, profileJSON, rec.RawText).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResumeByID returns the resume with the given ID, or nil if it
// does not exist
func (db *DB) GetResumeByID(ctx context.Context, id uuid.UUID) (*ResumeRecord, error) {
	var rec ResumeRecord
	var profileJSON []byte

	err := db.pool.QueryRow(ctx, `
		SELECT id, candidate_name, profile, raw_text, created_at, updated_at
		FROM resumes
		WHERE id = $1`, id).
		Scan(&rec.ID, &rec.CandidateName, &profileJSON, &rec.RawText, &rec.CreatedAt, &rec.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if len(profileJSON) > 0 {
		_ = json.Unmarshal(profileJSON, &rec.Profile)
	}
	return &rec, nil
}

// ListResumes returns all stored resumes, newest first. Raw text is
// omitted to keep listings light.
func (db *DB) ListResumes(ctx context.Context) ([]*ResumeRecord, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, candidate_name, profile, created_at, updated_at
		FROM resumes
		ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var records []*ResumeRecord
	for rows.Next() {
		var rec ResumeRecord
		var profileJSON []byte
		if err := rows.Scan(&rec.ID, &rec.CandidateName, &profileJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if len(profileJSON) > 0 {
			_ = json.Unmarshal(profileJSON, &rec.Profile)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// DeleteResume removes a resume and its cached embeddings. Evaluations
// referencing it are removed by the foreign key cascade.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if _, err := db.pool.Exec(ctx, `
		DELETE FROM embeddings
		WHERE content_type = $1 AND content_id = $2`, ContentTypeResume, id); err != nil {
		return fmt.Errorf("failed to delete resume embeddings: %w", err)
	}
	return nil
}
