package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/db"
	"github.com/jonathan/resume-relevance/internal/ingestion"
	"github.com/jonathan/resume-relevance/internal/parsing"
	"github.com/jonathan/resume-relevance/internal/scoring"
	"github.com/jonathan/resume-relevance/internal/types"
)

// CreateJobDescriptionRequest represents the request body for
// POST /api/job-descriptions. Callers send exactly one of a structured
// profile, raw posting text, or a URL to ingest.
type CreateJobDescriptionRequest struct {
	Profile *types.Profile `json:"profile,omitempty"`
	Text    string         `json:"text,omitempty"`
	URL     string         `json:"url,omitempty"`
	Browser bool           `json:"browser,omitempty"` // render the URL with a headless browser when the static fetch comes up short
	Title   string         `json:"title,omitempty"`
}

// handleCreateJobDescription stores a job description from a structured
// profile, raw text, or a fetched URL
func (s *Server) handleCreateJobDescription(w http.ResponseWriter, r *http.Request) {
	var req CreateJobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	provided := 0
	if req.Profile != nil {
		provided++
	}
	if req.Text != "" {
		provided++
	}
	if req.URL != "" {
		provided++
	}
	if provided != 1 {
		s.errorResponse(w, http.StatusBadRequest, "Exactly one of profile, text, or url is required")
		return
	}

	var profile *types.Profile
	var sourceURL *string

	switch {
	case req.Profile != nil:
		profile = req.Profile
		profile.Kind = types.KindJob
		if profile.Skills == nil {
			s.errorResponse(w, http.StatusBadRequest, "profile.skills is required")
			return
		}
		parsing.NormalizeProfile(profile)
		if err := profile.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid profile: "+err.Error())
			return
		}

	case req.Text != "":
		profile = s.parseJob(r.Context(), ingestion.CleanText(req.Text))

	default:
		// Postings already ingested from this URL are returned as-is
		// instead of being fetched again.
		existing, err := s.db.GetJobDescriptionBySourceURL(r.Context(), req.URL)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if existing != nil {
			s.jsonResponse(w, http.StatusOK, existing)
			return
		}

		text, _, err := ingestion.IngestFromURL(r.Context(), req.URL, req.Browser, false)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to ingest job posting URL: "+err.Error())
			return
		}
		profile = s.parseJob(r.Context(), text)
		sourceURL = &req.URL
	}

	title := req.Title
	if title == "" {
		title = profile.Name
	}

	rec := &db.JobRecord{
		ID:        uuid.New(),
		Title:     title,
		SourceURL: sourceURL,
		Profile:   profile,
		RawText:   profile.RawText,
	}
	profile.ID = rec.ID
	// Raw text lives in its own column; keep the profile JSON lean.
	profile.RawText = ""

	if err := s.db.SaveJobDescription(r.Context(), rec); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, rec)
}

// parseJob extracts a job profile from cleaned text, preferring the LLM
// extractor and falling back to heuristics when it is unavailable or
// fails.
func (s *Server) parseJob(ctx context.Context, cleaned string) *types.Profile {
	if s.llmClient != nil {
		profile, err := parsing.ParseJobProfile(ctx, s.llmClient, cleaned)
		if err == nil {
			return profile
		}
		s.log.Warn("LLM job extraction failed, using heuristics", "error", err)
	}
	return parsing.ExtractJobProfile(cleaned)
}

// handleListJobDescriptions returns all stored job descriptions, newest
// first
func (s *Server) handleListJobDescriptions(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.db.ListJobDescriptions(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_descriptions": jobs,
		"count":            len(jobs),
	})
}

// handleGetJobDescription returns a stored job description by ID
func (s *Server) handleGetJobDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "job description")
	if !ok {
		return
	}

	rec, err := s.db.GetJobDescriptionByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if rec == nil {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDeleteJobDescription removes a job description, its embeddings,
// and its evaluations
func (s *Server) handleDeleteJobDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "job description")
	if !ok {
		return
	}

	if err := s.db.DeleteJobDescription(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListJobEvaluations returns the evaluations of one job description
// ranked best first
func (s *Server) handleListJobEvaluations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "job description")
	if !ok {
		return
	}

	evaluations, err := s.db.ListEvaluationsByJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jd_id":       id.String(),
		"evaluations": evaluations,
		"count":       len(evaluations),
	})
}

// SimilarResume is one entry in the similar-resumes ranking.
type SimilarResume struct {
	ResumeID      string  `json:"resume_id"`
	CandidateName string  `json:"candidate_name,omitempty"`
	Similarity    float64 `json:"similarity"`
}

// handleSimilarResumes ranks stored resumes by embedding similarity to a
// job description
func (s *Server) handleSimilarResumes(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "job description")
	if !ok {
		return
	}

	topK := 5
	if kStr := r.URL.Query().Get("top_k"); kStr != "" {
		k, err := strconv.Atoi(kStr)
		if err != nil || k < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid top_k value")
			return
		}
		topK = k
	}

	job, err := s.db.GetJobDescriptionByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return
	}

	ranked, model, err := s.rankResumes(r.Context(), job, topK)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to rank resumes: "+err.Error())
		return
	}

	results := make([]SimilarResume, 0, len(ranked))
	for _, item := range ranked {
		entry := SimilarResume{
			ResumeID:   item.ID.String(),
			Similarity: item.Score,
		}
		if rec, err := s.db.GetResumeByID(r.Context(), item.ID); err == nil && rec != nil {
			entry.CandidateName = rec.CandidateName
		}
		results = append(results, entry)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jd_id":   id.String(),
		"model":   model,
		"results": results,
		"count":   len(results),
	})
}

// rankResumes ranks stored resumes against one job description. With a
// provider configured the ranking runs over cached vectors; without one a
// lexical model is fitted over every stored resume plus the job.
func (s *Server) rankResumes(ctx context.Context, job *db.JobRecord, topK int) ([]scoring.SimilarityResult, string, error) {
	if s.provider != nil {
		jobDocs := []document{{
			contentType: db.ContentTypeJob,
			id:          job.ID,
			text:        documentText(job.Profile, job.RawText),
		}}
		vectors, err := s.providerEmbeddings(ctx, jobDocs)
		if err != nil {
			return nil, "", err
		}

		records, err := s.db.ListEmbeddings(ctx, db.ContentTypeResume, s.provider.ModelName())
		if err != nil {
			return nil, "", err
		}
		candidates := make(map[uuid.UUID][]float64, len(records))
		for _, rec := range records {
			candidates[rec.ContentID] = rec.Vector
		}
		return scoring.TopSimilar(vectors[0], candidates, topK), s.provider.ModelName(), nil
	}

	resumes, err := s.db.ListResumes(ctx)
	if err != nil {
		return nil, "", err
	}

	docs := make([]document, 0, len(resumes)+1)
	docs = append(docs, document{
		contentType: db.ContentTypeJob,
		id:          job.ID,
		text:        documentText(job.Profile, job.RawText),
	})
	for _, rec := range resumes {
		docs = append(docs, document{
			contentType: db.ContentTypeResume,
			id:          rec.ID,
			text:        documentText(rec.Profile, rec.RawText),
		})
	}

	vectors, model := s.lexicalEmbeddings(ctx, docs)
	candidates := make(map[uuid.UUID][]float64, len(resumes))
	for i, rec := range resumes {
		candidates[rec.ID] = vectors[i+1]
	}
	return scoring.TopSimilar(vectors[0], candidates, topK), model, nil
}
