package scoring

import (
	"bytes"
	"math"
	"sort"

	"github.com/google/uuid"
)

// zeroMagnitudeEpsilon is the magnitude below which a vector is treated as
// zero, yielding a defined similarity of 0 instead of a division fault.
const zeroMagnitudeEpsilon = 1e-10

// Similarity computes the cosine similarity of two embedding vectors and
// rescales it from [-1,1] to [0,100]. The vectors must have equal, nonzero
// length; a mismatch is an IncompatibleEmbeddingError. This function never
// calls an embedding provider; vectors are supplied by the caller.
func Similarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, &IncompatibleEmbeddingError{DimA: len(a), DimB: len(b)}
	}

	var dot, sumA, sumB float64
	for i := range a {
		dot += a[i] * b[i]
		sumA += a[i] * a[i]
		sumB += b[i] * b[i]
	}

	magA := math.Sqrt(sumA)
	magB := math.Sqrt(sumB)
	if magA < zeroMagnitudeEpsilon || magB < zeroMagnitudeEpsilon {
		return 0, nil
	}

	cosine := dot / (magA * magB)
	// Guard against float drift pushing the cosine out of [-1, 1].
	cosine = math.Max(-1, math.Min(1, cosine))

	return 50 * (cosine + 1), nil
}

// SimilarityResult pairs a candidate id with its similarity score.
type SimilarityResult struct {
	ID    uuid.UUID `json:"id"`
	Score float64   `json:"score"`
}

// TopSimilar ranks candidate vectors by similarity to the query and
// returns at most k results, highest first, ties broken by ascending id.
// Candidates whose vectors cannot be compared with the query are skipped.
func TopSimilar(query []float64, candidates map[uuid.UUID][]float64, k int) []SimilarityResult {
	results := make([]SimilarityResult, 0, len(candidates))
	for id, vector := range candidates {
		score, err := Similarity(query, vector)
		if err != nil {
			continue
		}
		results = append(results, SimilarityResult{ID: id, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return bytes.Compare(results[i].ID[:], results[j].ID[:]) < 0
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}
