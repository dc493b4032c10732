package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveEmbedding inserts or refreshes a cached embedding vector
func (db *DB) SaveEmbedding(ctx context.Context, rec *EmbeddingRecord) error {
	vectorJSON, err := json.Marshal(rec.Vector)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding vector: %w", err)
	}

	err = db.pool.QueryRow(ctx, `
		INSERT INTO embeddings (content_type, content_id, model_name, vector)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (content_type, content_id, model_name) DO UPDATE SET
			vector = EXCLUDED.vector,
			created_at = NOW()
		RETURNING created_at`,
		rec.ContentType, rec.ContentID, rec.ModelName, vectorJSON).
		Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save embedding: %w", err)
	}
	return nil
}

// GetEmbedding returns the cached vector for a piece of content under
// a specific model, or nil if none is cached
func (db *DB) GetEmbedding(ctx context.Context, contentType string, contentID uuid.UUID, modelName string) (*EmbeddingRecord, error) {
	var rec EmbeddingRecord
	var vectorJSON []byte

	err := db.pool.QueryRow(ctx, `
		SELECT content_type, content_id, model_name, vector, created_at
		FROM embeddings
		WHERE content_type = $1 AND content_id = $2 AND model_name = $3`,
		contentType, contentID, modelName).
		Scan(&rec.ContentType, &rec.ContentID, &rec.ModelName, &vectorJSON, &rec.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get embedding: %w", err)
	}

	if len(vectorJSON) > 0 {
		_ = json.Unmarshal(vectorJSON, &rec.Vector)
	}
	return &rec, nil
}

// ListEmbeddings returns every cached vector of one content type under
// a model. Used to rank stored resumes against a job without
// re-embedding them.
func (db *DB) ListEmbeddings(ctx context.Context, contentType, modelName string) ([]*EmbeddingRecord, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT content_type, content_id, model_name, vector, created_at
		FROM embeddings
		WHERE content_type = $1 AND model_name = $2
		ORDER BY content_id ASC`, contentType, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to list embeddings: %w", err)
	}
	defer rows.Close()

	var records []*EmbeddingRecord
	for rows.Next() {
		var rec EmbeddingRecord
		var vectorJSON []byte
		if err := rows.Scan(&rec.ContentType, &rec.ContentID, &rec.ModelName, &vectorJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}
		if len(vectorJSON) > 0 {
			_ = json.Unmarshal(vectorJSON, &rec.Vector)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
