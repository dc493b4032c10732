package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/db"
	"github.com/jonathan/resume-relevance/internal/scoring"
	"github.com/jonathan/resume-relevance/internal/types"
)

// EvaluateBatchRequest represents the request body for POST /api/evaluate/batch
type EvaluateBatchRequest struct {
	JobID     string   `json:"jd_id"`
	ResumeIDs []string `json:"resume_ids"`
	Workers   int      `json:"workers,omitempty"`
}

// BatchResultEntry is one resume's outcome in the batch response. Exactly
// one of evaluation or error is set; degraded mirrors the evaluation's
// flag so callers can filter without unpacking it.
type BatchResultEntry struct {
	ResumeID   string            `json:"resume_id"`
	Evaluation *types.Evaluation `json:"evaluation,omitempty"`
	Degraded   bool              `json:"degraded,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// batchInput is the loaded, validated input of one batch evaluation call.
type batchInput struct {
	jdID       uuid.UUID
	job        *db.JobRecord
	profiles   []*types.Profile
	embeddings map[uuid.UUID][]float64
	jdVector   []float64
	model      string
	workers    int
}

// prepareBatch decodes and loads everything a batch evaluation needs,
// writing the error response itself when the request cannot proceed.
func (s *Server) prepareBatch(w http.ResponseWriter, r *http.Request) (*batchInput, bool) {
	var req EvaluateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}

	jdID, err := uuid.Parse(req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid jd_id")
		return nil, false
	}
	if len(req.ResumeIDs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "resume_ids must not be empty")
		return nil, false
	}

	seen := make(map[uuid.UUID]bool, len(req.ResumeIDs))
	resumeIDs := make([]uuid.UUID, 0, len(req.ResumeIDs))
	for _, idStr := range req.ResumeIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume id: "+idStr)
			return nil, false
		}
		if !seen[id] {
			seen[id] = true
			resumeIDs = append(resumeIDs, id)
		}
	}

	job, err := s.db.GetJobDescriptionByID(r.Context(), jdID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if job == nil || job.Profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return nil, false
	}
	job.Profile.ID = job.ID

	profiles := make([]*types.Profile, 0, len(resumeIDs))
	docs := make([]document, 0, len(resumeIDs)+1)
	docs = append(docs, document{
		contentType: db.ContentTypeJob,
		id:          job.ID,
		text:        documentText(job.Profile, job.RawText),
	})
	for _, id := range resumeIDs {
		rec, err := s.db.GetResumeByID(r.Context(), id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return nil, false
		}
		if rec == nil || rec.Profile == nil {
			s.errorResponse(w, http.StatusNotFound, "Resume not found: "+id.String())
			return nil, false
		}
		rec.Profile.ID = rec.ID
		profiles = append(profiles, rec.Profile)
		docs = append(docs, document{
			contentType: db.ContentTypeResume,
			id:          rec.ID,
			text:        documentText(rec.Profile, rec.RawText),
		})
	}

	vectors, model := s.resolveEmbeddings(r.Context(), docs)
	embeddings := make(map[uuid.UUID][]float64, len(resumeIDs))
	for i, id := range resumeIDs {
		embeddings[id] = vectors[i+1]
	}

	return &batchInput{
		jdID:       jdID,
		job:        job,
		profiles:   profiles,
		embeddings: embeddings,
		jdVector:   vectors[0],
		model:      model,
		workers:    req.Workers,
	}, true
}

// persistBatchResults saves every scored entry and maps the batch to its
// response form. Persistence failures are logged, not surfaced; the
// caller still gets the computed evaluation.
func (s *Server) persistBatchResults(ctx context.Context, entries []scoring.BatchEntry) []BatchResultEntry {
	results := make([]BatchResultEntry, 0, len(entries))
	for _, entry := range entries {
		item := BatchResultEntry{ResumeID: entry.ResumeID.String()}
		if entry.Err != nil {
			item.Error = entry.Err.Error()
		} else {
			item.Evaluation = entry.Evaluation
			item.Degraded = entry.Evaluation.Degraded
			if err := s.db.SaveEvaluation(ctx, entry.Evaluation); err != nil {
				s.log.Warn("failed to persist batch evaluation",
					"resume_id", entry.ResumeID, "error", err)
			}
		}
		results = append(results, item)
	}
	return results
}

// handleEvaluateBatch scores a set of stored resumes against one job
// description using the worker pool and persists each result
func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	in, ok := s.prepareBatch(w, r)
	if !ok {
		return
	}

	entries, err := s.engine.EvaluateBatch(r.Context(), in.profiles, in.job.Profile, in.embeddings, in.jdVector,
		&scoring.BatchOptions{Workers: in.workers})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Batch evaluation failed: "+err.Error())
		return
	}

	results := s.persistBatchResults(r.Context(), entries)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jd_id":           in.jdID.String(),
		"embedding_model": in.model,
		"results":         results,
		"count":           len(results),
	})
}

// handleEvaluateBatchStream runs a batch evaluation and streams per-resume
// progress via SSE, ending with the ranked result set
func (s *Server) handleEvaluateBatchStream(w http.ResponseWriter, r *http.Request) {
	in, ok := s.prepareBatch(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := &scoring.BatchOptions{
		Workers: in.workers,
		Progress: func(completed, total int, resumeID uuid.UUID) {
			if err := sse.WriteEvent("progress", map[string]any{
				"completed": completed,
				"total":     total,
				"resume_id": resumeID.String(),
			}); err != nil {
				s.log.Warn("failed to write SSE event", "error", err)
			}
		},
	}

	entries, err := s.engine.EvaluateBatch(r.Context(), in.profiles, in.job.Profile, in.embeddings, in.jdVector, opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	results := s.persistBatchResults(r.Context(), entries)

	sse.WriteComplete(map[string]any{
		"jd_id":           in.jdID.String(),
		"embedding_model": in.model,
		"results":         results,
		"count":           len(results),
	})
}
