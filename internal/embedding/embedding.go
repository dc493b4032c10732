// Package embedding produces vector representations of profile text. The
// primary provider calls the Gemini embedding API; a lexical TF-IDF
// provider serves as the offline fallback so evaluation never hard-fails
// when no API key is configured.
package embedding

import (
	"context"

	"github.com/jonathan/resume-relevance/internal/llm"
)

// Provider produces embedding vectors for text. Vectors from the same
// provider instance are always dimension-compatible; vectors from
// different providers or model versions must never be compared.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	ModelName() string
}

// GeminiProvider embeds text through the LLM client's embedding model.
type GeminiProvider struct {
	client llm.Client
}

// NewGeminiProvider wraps an LLM client as an embedding provider.
func NewGeminiProvider(client llm.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

// Embed returns the embedding vector for the given text.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return p.client.Embed(ctx, text)
}

// ModelName returns the embedding model identifier, used to key cached
// vectors so that model upgrades never mix incompatible dimensions.
func (p *GeminiProvider) ModelName() string {
	return p.client.EmbeddingModel()
}
