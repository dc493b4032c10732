package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/db"
	"github.com/jonathan/resume-relevance/internal/ingestion"
	"github.com/jonathan/resume-relevance/internal/parsing"
	"github.com/jonathan/resume-relevance/internal/types"
)

// CreateResumeRequest represents the request body for POST /api/resumes.
// Callers send either a structured profile or raw resume text to extract
// a profile from.
type CreateResumeRequest struct {
	Profile *types.Profile `json:"profile,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// handleCreateResume stores a resume from a structured profile or raw text
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if (req.Profile == nil) == (req.Text == "") {
		s.errorResponse(w, http.StatusBadRequest, "Exactly one of profile or text is required")
		return
	}

	var profile *types.Profile
	if req.Profile != nil {
		profile = req.Profile
		profile.Kind = types.KindResume
		if profile.Skills == nil {
			s.errorResponse(w, http.StatusBadRequest, "profile.skills is required")
			return
		}
		parsing.NormalizeProfile(profile)
		if err := profile.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid profile: "+err.Error())
			return
		}
	} else {
		profile = s.parseResume(r.Context(), ingestion.CleanText(req.Text))
	}

	rec := &db.ResumeRecord{
		ID:            uuid.New(),
		CandidateName: profile.Name,
		Profile:       profile,
		RawText:       profile.RawText,
	}
	profile.ID = rec.ID
	// Raw text lives in its own column; keep the profile JSON lean.
	profile.RawText = ""

	if err := s.db.SaveResume(r.Context(), rec); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, rec)
}

// parseResume extracts a resume profile from cleaned text, preferring the
// LLM extractor and falling back to heuristics when it is unavailable or
// fails.
func (s *Server) parseResume(ctx context.Context, cleaned string) *types.Profile {
	if s.llmClient != nil {
		profile, err := parsing.ParseResumeProfile(ctx, s.llmClient, cleaned)
		if err == nil {
			return profile
		}
		s.log.Warn("LLM resume extraction failed, using heuristics", "error", err)
	}
	return parsing.ExtractResumeProfile(cleaned)
}

// handleListResumes returns all stored resumes, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.db.ListResumes(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleGetResume returns a stored resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	rec, err := s.db.GetResumeByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if rec == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDeleteResume removes a resume, its embeddings, and its evaluations
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	if err := s.db.DeleteResume(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListResumeEvaluations returns all evaluations of one resume,
// newest first
func (s *Server) handleListResumeEvaluations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	evaluations, err := s.db.ListEvaluationsByResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume_id":   id.String(),
		"evaluations": evaluations,
		"count":       len(evaluations),
	})
}

// pathID parses the {id} path segment as a UUID, writing the error
// response itself when the segment is missing or malformed.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, kind string) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+kind+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
