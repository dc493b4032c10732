package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-relevance/internal/types"
)

// SaveEvaluation appends an evaluation to the history. Evaluations are
// never updated, so re-scoring the same pair produces a new row.
func (db *DB) SaveEvaluation(ctx context.Context, ev *types.Evaluation) error {
	missingSkills, err := json.Marshal(stringsOrEmpty(ev.MissingSkills))
	if err != nil {
		return fmt.Errorf("failed to marshal missing skills: %w", err)
	}
	missingProjects, err := json.Marshal(stringsOrEmpty(ev.MissingProjects))
	if err != nil {
		return fmt.Errorf("failed to marshal missing projects: %w", err)
	}
	missingCerts, err := json.Marshal(stringsOrEmpty(ev.MissingCertifications))
	if err != nil {
		return fmt.Errorf("failed to marshal missing certifications: %w", err)
	}
	suggestions, err := json.Marshal(suggestionsOrEmpty(ev.ImprovementSuggestions))
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	err = db.pool.QueryRow(ctx, `
		INSERT INTO evaluations (
			id, resume_id, jd_id,
			relevance_score, fit_verdict, hard_match_score, semantic_match_score,
			missing_skills, missing_projects, missing_certifications,
			improvement_suggestions, degraded
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		ev.ID, ev.ResumeID, ev.JobID,
		ev.RelevanceScore, string(ev.FitVerdict), ev.HardMatchScore, ev.SemanticMatchScore,
		missingSkills, missingProjects, missingCerts,
		suggestions, ev.Degraded).
		Scan(&ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	return nil
}

// UpdateEvaluationSuggestions replaces the suggestions attached to an
// evaluation. Scores stay append-only; suggestions are an enrichment and
// may be regenerated in place.
func (db *DB) UpdateEvaluationSuggestions(ctx context.Context, id uuid.UUID, suggestions []types.ImprovementSuggestion) error {
	data, err := json.Marshal(suggestionsOrEmpty(suggestions))
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	tag, err := db.pool.Exec(ctx, `
		UPDATE evaluations
		SET improvement_suggestions = $2
		WHERE id = $1`, id, data)
	if err != nil {
		return fmt.Errorf("failed to update suggestions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("evaluation not found: %s", id)
	}
	return nil
}

// GetEvaluationByID returns the evaluation with the given ID, or nil
// if it does not exist
func (db *DB) GetEvaluationByID(ctx context.Context, id uuid.UUID) (*types.Evaluation, error) {
	row := db.pool.QueryRow(ctx, `
		SELECT id, resume_id, jd_id,
			relevance_score, fit_verdict, hard_match_score, semantic_match_score,
			missing_skills, missing_projects, missing_certifications,
			improvement_suggestions, degraded, created_at
		FROM evaluations
		WHERE id = $1`, id)

	ev, err := scanEvaluation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return ev, nil
}

// ListEvaluationsByJob returns all evaluations for a job description
// ranked best first. Ties break on resume ID so the ordering is stable
// across calls.
func (db *DB) ListEvaluationsByJob(ctx context.Context, jdID uuid.UUID) ([]*types.Evaluation, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, resume_id, jd_id,
			relevance_score, fit_verdict, hard_match_score, semantic_match_score,
			missing_skills, missing_projects, missing_certifications,
			improvement_suggestions, degraded, created_at
		FROM evaluations
		WHERE jd_id = $1
		ORDER BY relevance_score DESC, resume_id ASC`, jdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	return collectEvaluations(rows)
}

// ListEvaluationsByResume returns a resume's evaluation history,
// newest first
func (db *DB) ListEvaluationsByResume(ctx context.Context, resumeID uuid.UUID) ([]*types.Evaluation, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, resume_id, jd_id,
			relevance_score, fit_verdict, hard_match_score, semantic_match_score,
			missing_skills, missing_projects, missing_certifications,
			improvement_suggestions, degraded, created_at
		FROM evaluations
		WHERE resume_id = $1
		ORDER BY created_at DESC, id ASC`, resumeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	return collectEvaluations(rows)
}

func collectEvaluations(rows pgx.Rows) ([]*types.Evaluation, error) {
	var evals []*types.Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evals = append(evals, ev)
	}
	return evals, rows.Err()
}

func scanEvaluation(row pgx.Row) (*types.Evaluation, error) {
	var ev types.Evaluation
	var verdict string
	var missingSkills, missingProjects, missingCerts, suggestions []byte

	err := row.Scan(&ev.ID, &ev.ResumeID, &ev.JobID,
		&ev.RelevanceScore, &verdict, &ev.HardMatchScore, &ev.SemanticMatchScore,
		&missingSkills, &missingProjects, &missingCerts,
		&suggestions, &ev.Degraded, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}

	ev.FitVerdict = types.Verdict(verdict)
	if len(missingSkills) > 0 {
		_ = json.Unmarshal(missingSkills, &ev.MissingSkills)
	}
	if len(missingProjects) > 0 {
		_ = json.Unmarshal(missingProjects, &ev.MissingProjects)
	}
	if len(missingCerts) > 0 {
		_ = json.Unmarshal(missingCerts, &ev.MissingCertifications)
	}
	if len(suggestions) > 0 {
		_ = json.Unmarshal(suggestions, &ev.ImprovementSuggestions)
	}
	return &ev, nil
}

// stringsOrEmpty keeps JSONB columns as [] rather than null for nil
// slices
func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func suggestionsOrEmpty(s []types.ImprovementSuggestion) []types.ImprovementSuggestion {
	if s == nil {
		return []types.ImprovementSuggestion{}
	}
	return s
}
