package embedding

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
)

// LexicalModelName identifies vectors produced by the TF-IDF provider.
const LexicalModelName = "lexical-tfidf-v1"

// lexicalStopWords filters common English words that add noise to term
// vectors.
var lexicalStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
}

// LexicalProvider embeds text as TF-IDF weighted term vectors over a
// vocabulary fitted on a corpus. All vectors from one provider share the
// vocabulary dimension, so they are mutually comparable; vectors from
// providers fitted on different corpora are not.
type LexicalProvider struct {
	vocab map[string]int // term -> vector index
	idf   []float64      // per-term inverse document frequency
}

// NewLexicalProvider fits a vocabulary and document frequencies on the
// corpus. The vocabulary is ordered lexicographically so a provider built
// from the same corpus always yields identical vectors.
func NewLexicalProvider(corpus []string) *LexicalProvider {
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range tokenize(doc) {
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	p := &LexicalProvider{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}

	// Smoothed IDF keeps terms shared by every document contributing,
	// so two documents with identical vocabulary still score as similar.
	totalDocs := float64(len(corpus))
	for i, term := range terms {
		p.vocab[term] = i
		p.idf[i] = math.Log((1+totalDocs)/(1+float64(docFreq[term]))) + 1
	}

	return p
}

// Embed returns the TF-IDF vector for the text over the fitted
// vocabulary. Terms outside the vocabulary are ignored; text sharing no
// vocabulary terms yields the zero vector, which scores 0 similarity.
func (p *LexicalProvider) Embed(_ context.Context, text string) ([]float64, error) {
	vector := make([]float64, len(p.idf))
	for _, term := range tokenize(text) {
		if i, ok := p.vocab[term]; ok {
			vector[i] += p.idf[i]
		}
	}
	return vector, nil
}

// ModelName returns the lexical model identifier.
func (p *LexicalProvider) ModelName() string {
	return LexicalModelName
}

// Dimension returns the fitted vocabulary size.
func (p *LexicalProvider) Dimension() int {
	return len(p.idf)
}

// tokenize splits text into lowercase terms, skipping stop words and
// short tokens. Preserves tech names like "c++", "c#", "node.js" by
// treating + # . as word chars.
func tokenize(text string) []string {
	var terms []string
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".") // drop trailing dots
		if len([]rune(w)) >= 2 && !lexicalStopWords[w] {
			terms = append(terms, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return terms
}
