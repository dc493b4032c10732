package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/db"
	"github.com/jonathan/resume-relevance/internal/types"
)

// EvaluateRequest represents the request body for POST /api/evaluate
type EvaluateRequest struct {
	ResumeID        string `json:"resume_id"`
	JobID           string `json:"jd_id"`
	WithSuggestions bool   `json:"with_suggestions,omitempty"`
}

// EvaluateResponse represents the response for POST /api/evaluate
type EvaluateResponse struct {
	Evaluation     *types.Evaluation `json:"evaluation"`
	EmbeddingModel string            `json:"embedding_model"`
}

// handleEvaluate scores one stored resume against one stored job
// description and persists the result
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume_id")
		return
	}
	jdID, err := uuid.Parse(req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid jd_id")
		return
	}

	resume, err := s.db.GetResumeByID(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil || resume.Profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	job, err := s.db.GetJobDescriptionByID(r.Context(), jdID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil || job.Profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return
	}

	// Evaluations reference stored rows, so the row IDs are authoritative.
	resume.Profile.ID = resume.ID
	job.Profile.ID = job.ID

	docs := []document{
		{contentType: db.ContentTypeResume, id: resume.ID, text: documentText(resume.Profile, resume.RawText)},
		{contentType: db.ContentTypeJob, id: job.ID, text: documentText(job.Profile, job.RawText)},
	}
	vectors, model := s.resolveEmbeddings(r.Context(), docs)

	evaluation, err := s.engine.Evaluate(resume.Profile, job.Profile, vectors[0], vectors[1])
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Evaluation failed: "+err.Error())
		return
	}

	if req.WithSuggestions {
		suggestions, err := s.suggester.Generate(r.Context(), evaluation, job.Profile)
		if err != nil {
			// Suggestions are an enrichment, not part of the score.
			s.log.Warn("suggestion generation failed", "error", err)
		} else {
			evaluation.ImprovementSuggestions = suggestions
		}
	}

	if err := s.db.SaveEvaluation(r.Context(), evaluation); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, EvaluateResponse{
		Evaluation:     evaluation,
		EmbeddingModel: model,
	})
}

// handleGetEvaluation returns a stored evaluation by ID
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "evaluation")
	if !ok {
		return
	}

	evaluation, err := s.db.GetEvaluationByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if evaluation == nil {
		s.errorResponse(w, http.StatusNotFound, "Evaluation not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, evaluation)
}
