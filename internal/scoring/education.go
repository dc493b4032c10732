package scoring

import (
	"strings"

	"github.com/jonathan/resume-relevance/internal/fuzzy"
	"github.com/jonathan/resume-relevance/internal/types"
)

// degreeRank maps degree levels to numeric ranks for comparison.
var degreeRank = map[string]int{
	"associate": 1,
	"bachelor":  2,
	"master":    3,
	"phd":       4,
}

// degreeAliases maps common degree spellings to canonical levels.
var degreeAliases = map[string]string{
	"a.s":       "associate",
	"aa":        "associate",
	"b.s":       "bachelor",
	"b.a":       "bachelor",
	"bs":        "bachelor",
	"ba":        "bachelor",
	"b.tech":    "bachelor",
	"btech":     "bachelor",
	"b.e":       "bachelor",
	"bsc":       "bachelor",
	"undergrad": "bachelor",
	"m.s":       "master",
	"m.a":       "master",
	"ms":        "master",
	"ma":        "master",
	"msc":       "master",
	"m.tech":    "master",
	"mtech":     "master",
	"mba":       "master",
	"ph.d":      "phd",
	"doctorate": "phd",
	"doctoral":  "phd",
	"doctor":    "phd",
}

// relatedFields maps a field of study to fields considered adjacent enough
// to satisfy a field requirement.
var relatedFields = map[string][]string{
	"computer science":       {"software engineering", "computer engineering", "information technology", "information systems"},
	"software engineering":   {"computer science", "computer engineering"},
	"data science":           {"statistics", "mathematics", "computer science", "machine learning"},
	"statistics":             {"mathematics", "data science", "economics"},
	"mathematics":            {"statistics", "physics", "computer science"},
	"electrical engineering": {"computer engineering", "electronics"},
	"business administration": {"management", "finance", "economics"},
}

// scoreEducation implements the degree rules: 100 when some held degree
// meets a required level in a matching or related field, 60 when only the
// level is met, 0 when the job requires a degree and none qualifies, and
// 100 when the job states no education requirement.
func scoreEducation(held, required []types.Education) float64 {
	if len(required) == 0 {
		return 100
	}

	best := 0.0
	for _, req := range required {
		reqRank := degreeLevel(req.Degree)
		for _, have := range held {
			if degreeLevel(have.Degree) < reqRank {
				continue
			}
			if req.Field == "" || fieldMatches(have.Field, req.Field) {
				return 100
			}
			if best < 60 {
				best = 60
			}
		}
	}
	return best
}

// degreeLevel resolves a free-text degree string to its numeric rank.
// Unknown degrees rank 0, below every requirement.
func degreeLevel(degree string) int {
	normalized := fuzzy.Normalize(degree)
	if canonical, ok := degreeAliases[normalized]; ok {
		return degreeRank[canonical]
	}
	if rank, ok := degreeRank[normalized]; ok {
		return rank
	}
	// Degree phrases like "bachelor of science in physics" resolve by
	// the highest level word they contain.
	for _, level := range []string{"phd", "master", "bachelor", "associate"} {
		if strings.Contains(normalized, level) {
			return degreeRank[level]
		}
	}
	for _, token := range strings.Fields(normalized) {
		if canonical, ok := degreeAliases[token]; ok {
			return degreeRank[canonical]
		}
	}
	return 0
}

// fieldMatches reports whether a held field of study satisfies a required
// one, either by fuzzy match or through the related-fields table.
func fieldMatches(have, want string) bool {
	if have == "" {
		return false
	}
	if fuzzy.Matches(have, want) {
		return true
	}

	haveNorm := fuzzy.Normalize(have)
	wantNorm := fuzzy.Normalize(want)
	for _, related := range relatedFields[wantNorm] {
		if strings.Contains(haveNorm, related) || strings.Contains(related, haveNorm) {
			return true
		}
	}
	return false
}
