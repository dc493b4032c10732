// Package server provides the HTTP REST API for the relevance engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-relevance/internal/config"
	"github.com/jonathan/resume-relevance/internal/db"
	"github.com/jonathan/resume-relevance/internal/embedding"
	"github.com/jonathan/resume-relevance/internal/llm"
	"github.com/jonathan/resume-relevance/internal/logging"
	"github.com/jonathan/resume-relevance/internal/scoring"
	"github.com/jonathan/resume-relevance/internal/server/middleware"
	"github.com/jonathan/resume-relevance/internal/server/ratelimit"
	"github.com/jonathan/resume-relevance/internal/suggest"
	"github.com/jonathan/resume-relevance/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	log         *logging.Logger
	engine      *scoring.Engine
	llmClient   llm.Client
	provider    embedding.Provider
	suggester   suggest.Generator
	jwtService  *JWTService
	authConfig  *config.AuthConfig
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
	Weights      types.WeightConfig
	Logger       *logging.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("info")
	}

	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	engine, err := scoring.NewEngine(cfg.Weights)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring engine: %w", err)
	}

	s := &Server{
		db:     database,
		log:    logger,
		engine: engine,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	authConfig, err := config.NewAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create auth config: %w", err)
	}
	s.authConfig = authConfig
	s.jwtService = NewJWTService(authConfig)

	// The LLM client is optional. Without it, embeddings fall back to the
	// lexical provider and suggestions to the template generator.
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.provider = embedding.NewGeminiProvider(client)
		s.suggester = suggest.NewChain(suggest.NewLLMGenerator(client), suggest.NewTemplateGenerator())
	} else {
		logger.Warn("no Gemini API key configured, semantic scores will use lexical embeddings")
		s.suggester = suggest.NewChain(suggest.NewTemplateGenerator())
	}

	// Setup router. /health and /auth/login are open; everything under
	// /api/ requires a bearer token.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	protect := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protect(h))
	}

	// Resume endpoints
	handle("POST /api/resumes", s.handleCreateResume)
	handle("GET /api/resumes", s.handleListResumes)
	handle("GET /api/resumes/{id}", s.handleGetResume)
	handle("DELETE /api/resumes/{id}", s.handleDeleteResume)
	handle("GET /api/resumes/{id}/evaluations", s.handleListResumeEvaluations)

	// Job description endpoints
	handle("POST /api/job-descriptions", s.handleCreateJobDescription)
	handle("GET /api/job-descriptions", s.handleListJobDescriptions)
	handle("GET /api/job-descriptions/{id}", s.handleGetJobDescription)
	handle("DELETE /api/job-descriptions/{id}", s.handleDeleteJobDescription)
	handle("GET /api/job-descriptions/{id}/evaluations", s.handleListJobEvaluations)
	handle("GET /api/job-descriptions/{id}/similar-resumes", s.handleSimilarResumes)

	// Evaluation endpoints
	handle("POST /api/evaluate", s.handleEvaluate)
	handle("POST /api/evaluate/batch", s.handleEvaluateBatch)
	handle("POST /api/evaluate/batch/stream", s.handleEvaluateBatchStream)
	handle("GET /api/evaluations/{id}", s.handleGetEvaluation)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for batch evaluations and URL ingestion
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", "error", err)
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start).String(),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For would only be
// safe to honor behind a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.Warn("rate limit exceeded",
		"limit", info.Limit,
		"remaining", info.Remaining,
		"reset_at", info.ResetTime.Format(time.RFC3339),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
