package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-relevance/internal/db"
	"github.com/jonathan/resume-relevance/internal/embedding"
	"github.com/jonathan/resume-relevance/internal/types"
)

// document is one stored text the server needs a vector for.
type document struct {
	contentType string
	id          uuid.UUID
	text        string
}

// resolveEmbeddings returns one vector per document plus the model name
// that produced them. All returned vectors are mutually comparable.
//
// With a provider configured, cached vectors are reused and fresh ones
// are written back to the cache. Without a provider, or when it fails,
// TF-IDF vectors are fitted over the request's documents instead. Those
// are request-scoped (their dimension depends on the request corpus) and
// are never cached.
func (s *Server) resolveEmbeddings(ctx context.Context, docs []document) ([][]float64, string) {
	if s.provider != nil {
		vectors, err := s.providerEmbeddings(ctx, docs)
		if err == nil {
			return vectors, s.provider.ModelName()
		}
		s.log.Warn("embedding provider failed, falling back to lexical vectors", "error", err)
	}
	return s.lexicalEmbeddings(ctx, docs)
}

func (s *Server) providerEmbeddings(ctx context.Context, docs []document) ([][]float64, error) {
	model := s.provider.ModelName()
	vectors := make([][]float64, len(docs))
	for i := 0; i < len(docs); i++ {
		doc := docs[i]

		cached, err := s.db.GetEmbedding(ctx, doc.contentType, doc.id, model)
		if err != nil {
			// The cache is an optimization; a read failure is not fatal.
			s.log.Warn("embedding cache read failed", "content_id", doc.id, "error", err)
		}
		if cached != nil {
			vectors[i] = cached.Vector
			continue
		}

		vector, err := s.provider.Embed(ctx, doc.text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed %s %s: %w", doc.contentType, doc.id, err)
		}
		vectors[i] = vector

		rec := &db.EmbeddingRecord{
			ContentType: doc.contentType,
			ContentID:   doc.id,
			ModelName:   model,
			Vector:      vector,
		}
		if err := s.db.SaveEmbedding(ctx, rec); err != nil {
			s.log.Warn("embedding cache write failed", "content_id", doc.id, "error", err)
		}
	}
	return vectors, nil
}

func (s *Server) lexicalEmbeddings(ctx context.Context, docs []document) ([][]float64, string) {
	corpus := make([]string, 0, len(docs))
	for _, doc := range docs {
		corpus = append(corpus, doc.text)
	}
	lexical := embedding.NewLexicalProvider(corpus)

	// The lexical provider never fails; empty texts yield empty vectors,
	// which the engine treats as a degraded evaluation.
	vectors := make([][]float64, len(docs))
	for i := 0; i < len(docs); i++ {
		vectors[i], _ = lexical.Embed(ctx, docs[i].text)
	}
	return vectors, lexical.ModelName()
}

// documentText returns the text to embed for a stored document. The raw
// source text is preferred; structured-only profiles are rendered field
// by field so they still produce a usable vector.
func documentText(profile *types.Profile, rawText string) string {
	if rawText != "" {
		return rawText
	}
	if profile == nil {
		return ""
	}
	if profile.RawText != "" {
		return profile.RawText
	}

	var b strings.Builder
	writeLine := func(line string) {
		if line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	writeLine(profile.Name)
	writeLine(strings.Join(profile.Skills.Flat(), ", "))
	writeLine(strings.Join(profile.Projects, ", "))
	for _, edu := range profile.Education {
		if edu.Field != "" {
			writeLine(edu.Degree + " in " + edu.Field)
		} else {
			writeLine(edu.Degree)
		}
	}
	writeLine(strings.Join(profile.Certifications, ", "))
	if profile.ExperienceYears != nil {
		writeLine(fmt.Sprintf("%d years of experience", *profile.ExperienceYears))
	}
	return b.String()
}
