package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-relevance/internal/embedding"
	"github.com/jonathan/resume-relevance/internal/ingestion"
	"github.com/jonathan/resume-relevance/internal/llm"
	"github.com/jonathan/resume-relevance/internal/parsing"
	"github.com/jonathan/resume-relevance/internal/types"
)

// newLLMClient creates a Gemini client when an API key is available.
// Returns nil otherwise; callers fall back to heuristic extraction and
// lexical embeddings.
func newLLMClient(ctx context.Context, apiKey string) llm.Client {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create LLM client, falling back to heuristics: %v\n", err)
		return nil
	}
	return client
}

// isURL reports whether the argument names a remote job posting rather
// than a local file.
func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// loadResumeProfile reads and parses one resume file.
func loadResumeProfile(ctx context.Context, client llm.Client, path string) (*types.Profile, error) {
	cleaned, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	if client != nil {
		profile, err := parsing.ParseResumeProfile(ctx, client, cleaned)
		if err == nil {
			return profile, nil
		}
		fmt.Fprintf(os.Stderr, "Warning: LLM resume extraction failed, using heuristics: %v\n", err)
	}
	return parsing.ExtractResumeProfile(cleaned), nil
}

// loadJobProfile reads and parses a job description from a file or URL.
func loadJobProfile(ctx context.Context, client llm.Client, arg string, useBrowser bool, verbose bool) (*types.Profile, error) {
	var cleaned string
	var err error

	if isURL(arg) {
		cleaned, _, err = ingestion.IngestFromURL(ctx, arg, useBrowser, verbose)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest job posting URL: %w", err)
		}
	} else {
		cleaned, _, err = ingestion.IngestFromFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read job posting %s: %w", arg, err)
		}
	}

	if client != nil {
		profile, err := parsing.ParseJobProfile(ctx, client, cleaned)
		if err == nil {
			return profile, nil
		}
		fmt.Fprintf(os.Stderr, "Warning: LLM job extraction failed, using heuristics: %v\n", err)
	}
	return parsing.ExtractJobProfile(cleaned), nil
}

// embedTexts returns one vector per text plus the model name. The Gemini
// provider is tried first when a client exists; any failure falls back to
// request-fitted lexical vectors, which are always mutually comparable.
func embedTexts(ctx context.Context, client llm.Client, texts []string) ([][]float64, string) {
	if client != nil {
		provider := embedding.NewGeminiProvider(client)
		vectors := make([][]float64, len(texts))
		ok := true
		for i := 0; i < len(texts); i++ {
			vector, err := provider.Embed(ctx, texts[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: embedding failed, falling back to lexical vectors: %v\n", err)
				ok = false
				break
			}
			vectors[i] = vector
		}
		if ok {
			return vectors, provider.ModelName()
		}
	}

	lexical := embedding.NewLexicalProvider(texts)
	vectors := make([][]float64, len(texts))
	for i := 0; i < len(texts); i++ {
		vectors[i], _ = lexical.Embed(ctx, texts[i])
	}
	return vectors, lexical.ModelName()
}
