package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-relevance/internal/config"
	"github.com/jonathan/resume-relevance/internal/logging"
	"github.com/jonathan/resume-relevance/internal/scoring"
	"github.com/jonathan/resume-relevance/internal/suggest"
	"github.com/jonathan/resume-relevance/internal/types"
)

// newTestServer creates a server without a database connection. Handler
// tests built on it exercise decoding and validation paths only; anything
// touching storage lives in the integration tests.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	engine, err := scoring.NewEngine(types.DefaultWeightConfig())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	authConfig := &config.AuthConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
		BcryptCost:      4, // minimum cost keeps the tests fast
	}
	hash, err := authConfig.HashPassword("test-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	authConfig.PasswordHash = hash

	s := &Server{
		log:        logging.Nop(),
		engine:     engine,
		authConfig: authConfig,
		jwtService: NewJWTService(authConfig),
		suggester:  suggest.NewChain(suggest.NewTemplateGenerator()),
	}
	return s
}

// TestHealthEndpoint tests the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", resp["status"])
	}
}

// TestLoginEndpoint_Success tests /auth/login with the right password
func TestLoginEndpoint_Success(t *testing.T) {
	s := newTestServer(t)

	body := `{"password": "test-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleLogin(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.ExpiresIn != 24*3600 {
		t.Errorf("expected expires_in %d, got %d", 24*3600, resp.ExpiresIn)
	}

	// The issued token must validate against the same service
	claims, err := s.jwtService.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.Subject != tokenSubject {
		t.Errorf("expected subject %q, got %q", tokenSubject, claims.Subject)
	}
}

// TestLoginEndpoint_WrongPassword tests /auth/login with a wrong password
func TestLoginEndpoint_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	body := `{"password": "wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleLogin(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

// TestLoginEndpoint_MissingPassword tests /auth/login with an empty body
func TestLoginEndpoint_MissingPassword(t *testing.T) {
	s := newTestServer(t)

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleLogin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestLoginEndpoint_InvalidJSON tests /auth/login with invalid JSON
func TestLoginEndpoint_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	body := `{invalid json}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleLogin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestCreateResumeEndpoint_NeitherSource tests POST /api/resumes with no source
func TestCreateResumeEndpoint_NeitherSource(t *testing.T) {
	s := newTestServer(t)

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, "/api/resumes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleCreateResume(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestCreateResumeEndpoint_BothSources tests POST /api/resumes with both sources
func TestCreateResumeEndpoint_BothSources(t *testing.T) {
	s := newTestServer(t)

	body := `{"profile": {"skills": {"required": ["go"]}}, "text": "some resume"}`
	req := httptest.NewRequest(http.MethodPost, "/api/resumes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleCreateResume(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestCreateResumeEndpoint_MissingSkills tests POST /api/resumes with a
// profile that has no skills block
func TestCreateResumeEndpoint_MissingSkills(t *testing.T) {
	s := newTestServer(t)

	body := `{"profile": {"name": "Jane Doe"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/resumes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleCreateResume(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected error message in response")
	}
}

// TestCreateJobDescriptionEndpoint_MultipleSources tests POST
// /api/job-descriptions with more than one source
func TestCreateJobDescriptionEndpoint_MultipleSources(t *testing.T) {
	s := newTestServer(t)

	body := `{"text": "a posting", "url": "https://example.com/job"}`
	req := httptest.NewRequest(http.MethodPost, "/api/job-descriptions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleCreateJobDescription(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestEvaluateEndpoint_InvalidResumeID tests /api/evaluate with a bad resume id
func TestEvaluateEndpoint_InvalidResumeID(t *testing.T) {
	s := newTestServer(t)

	body := `{"resume_id": "not-a-uuid", "jd_id": "7b8ae4f2-55a6-4f5c-9a7e-111111111111"}`
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleEvaluate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestEvaluateBatchEndpoint_EmptyResumeIDs tests /api/evaluate/batch with
// an empty id list
func TestEvaluateBatchEndpoint_EmptyResumeIDs(t *testing.T) {
	s := newTestServer(t)

	body := `{"jd_id": "7b8ae4f2-55a6-4f5c-9a7e-111111111111", "resume_ids": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate/batch", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleEvaluateBatch(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestEvaluateBatchEndpoint_InvalidResumeID tests /api/evaluate/batch with
// a malformed id in the list
func TestEvaluateBatchEndpoint_InvalidResumeID(t *testing.T) {
	s := newTestServer(t)

	body := `{"jd_id": "7b8ae4f2-55a6-4f5c-9a7e-111111111111", "resume_ids": ["nope"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate/batch", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleEvaluateBatch(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestGetResumeEndpoint_InvalidID tests GET /api/resumes/{id} with a bad UUID
func TestGetResumeEndpoint_InvalidID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleGetResume(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestGetEvaluationEndpoint_MissingID tests GET /api/evaluations/{id} with
// an empty ID
func TestGetEvaluationEndpoint_MissingID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/evaluations/", nil)
	req.SetPathValue("id", "")
	w := httptest.NewRecorder()

	s.handleGetEvaluation(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestSimilarResumesEndpoint_InvalidTopK tests the top_k query validation
func TestSimilarResumesEndpoint_InvalidTopK(t *testing.T) {
	s := newTestServer(t)

	for _, topK := range []string{"zero", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/job-descriptions/7b8ae4f2-55a6-4f5c-9a7e-111111111111/similar-resumes?top_k="+topK, nil)
		req.SetPathValue("id", "7b8ae4f2-55a6-4f5c-9a7e-111111111111")
		w := httptest.NewRecorder()

		s.handleSimilarResumes(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("top_k=%s: expected status 400, got %d", topK, w.Code)
		}
	}
}

// TestParseResumeFallback tests heuristic extraction without an LLM client
func TestParseResumeFallback(t *testing.T) {
	s := newTestServer(t)

	profile := s.parseResume(context.Background(), "Jane Doe\n\nSkills: Python, Go, Docker\n")
	if profile == nil {
		t.Fatal("expected a profile")
	}
	if profile.Kind != types.KindResume {
		t.Errorf("expected resume kind, got %s", profile.Kind)
	}
	if len(profile.Skills.Required) == 0 {
		t.Error("expected extracted skills")
	}
}

// TestCORSMiddleware tests CORS headers are set
func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(t)

	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header Access-Control-Allow-Origin: *")
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected CORS header Access-Control-Allow-Methods")
	}
}

// TestCORSMiddleware_OPTIONS tests OPTIONS preflight request
func TestCORSMiddleware_OPTIONS(t *testing.T) {
	s := newTestServer(t)

	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("should not reach here")) //nolint:errcheck
	}))

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for OPTIONS, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("OPTIONS response should have empty body")
	}
}

// TestLoggingMiddleware tests that logging middleware passes through
func TestLoggingMiddleware(t *testing.T) {
	s := newTestServer(t)

	called := false
	handler := s.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if !called {
		t.Error("logging middleware should call next handler")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

// TestSSEWriter tests SSE event writing
func TestSSEWriter(t *testing.T) {
	w := httptest.NewRecorder()

	sse, err := NewSSEWriter(w)
	if err != nil {
		t.Fatalf("failed to create SSE writer: %v", err)
	}

	event := map[string]any{"completed": 1, "total": 3}
	if err := sse.WriteEvent("progress", event); err != nil {
		t.Fatalf("failed to write event: %v", err)
	}

	body := w.Body.String()
	if body == "" {
		t.Error("expected SSE output")
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("event: progress")) {
		t.Error("expected 'event: progress' in output")
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("data:")) {
		t.Error("expected 'data:' in output")
	}
}

// TestSSEWriter_Complete tests the completion event payload
func TestSSEWriter_Complete(t *testing.T) {
	w := httptest.NewRecorder()

	sse, err := NewSSEWriter(w)
	if err != nil {
		t.Fatalf("failed to create SSE writer: %v", err)
	}

	sse.WriteComplete(map[string]any{"count": 2})

	if !bytes.Contains(w.Body.Bytes(), []byte("event: complete")) {
		t.Error("expected 'event: complete' in output")
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"count":2`)) {
		t.Error("expected payload in output")
	}
}

// TestBatchResultEntry_JSON tests that error entries omit the evaluation
func TestBatchResultEntry_JSON(t *testing.T) {
	entry := BatchResultEntry{
		ResumeID: "7b8ae4f2-55a6-4f5c-9a7e-111111111111",
		Error:    "embedding failed",
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	if bytes.Contains(data, []byte("evaluation")) {
		t.Error("error entry should omit the evaluation field")
	}
	if !bytes.Contains(data, []byte("embedding failed")) {
		t.Error("expected error message in JSON")
	}
}

// TestJSONResponse tests jsonResponse helper
func TestJSONResponse(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()

	s.jsonResponse(w, http.StatusOK, map[string]string{"key": "value"})

	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("expected Content-Type: application/json")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if resp["key"] != "value" {
		t.Errorf("expected key='value', got '%s'", resp["key"])
	}
}

// TestErrorResponse tests errorResponse helper
func TestErrorResponse(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()

	s.errorResponse(w, http.StatusBadRequest, "test error")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if resp["error"] != "test error" {
		t.Errorf("expected error='test error', got '%s'", resp["error"])
	}
}

// TestExtractClientID tests client IP extraction from RemoteAddr
func TestExtractClientID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "203.0.113.7:54321"
	if got := s.extractClientID(req); got != "203.0.113.7" {
		t.Errorf("expected '203.0.113.7', got '%s'", got)
	}

	req.RemoteAddr = "malformed"
	if got := s.extractClientID(req); got != "malformed" {
		t.Errorf("expected fallback to RemoteAddr, got '%s'", got)
	}
}
