// Package fuzzy provides tolerant string matching for discrete tokens such
// as skills and certifications. Matching is pure: the only state is the
// static synonym table.
package fuzzy

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// MatchThreshold is the edit-distance similarity ratio a pair must exceed
// to count as a match when neither equality nor containment holds.
const MatchThreshold = 0.8

// synonyms maps normalized abbreviations to their normalized canonical
// forms. Abbreviation matches resolve through this table only; they are
// never guessed from letter overlap.
var synonyms = map[string]string{
	"ml":          "machine learning",
	"dl":          "deep learning",
	"ai":          "artificial intelligence",
	"nlp":         "natural language processing",
	"cv":          "computer vision",
	"js":          "javascript",
	"ts":          "typescript",
	"k8s":         "kubernetes",
	"golang":      "go",
	"postgres":    "postgresql",
	"aws":         "amazon web services",
	"gcp":         "google cloud platform",
	"oop":         "object oriented programming",
	"ci cd":       "continuous integration",
	"cs":          "computer science",
	"sklearn":     "scikit learn",
	"tf":          "tensorflow",
	"viz":         "visualization",
	"db":          "database",
	"spreadsheet": "excel",
}

// Normalize lower-cases a token, strips punctuation, and collapses internal
// whitespace. The characters +, # and interior dots survive so that tokens
// like c++, c# and node.js keep their identity.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	cleaned := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f != "" {
			cleaned = append(cleaned, f)
		}
	}
	return strings.Join(cleaned, " ")
}

// Canonical normalizes a token and resolves it through the synonym table.
func Canonical(s string) string {
	normalized := Normalize(s)
	if canonical, ok := synonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// Ratio returns the edit-distance similarity of two canonicalized tokens
// on a 0-1 scale.
func Ratio(a, b string) float64 {
	return ratio(Canonical(a), Canonical(b))
}

// Matches reports whether candidate and target refer to the same token:
// canonical forms are equal, one contains the other, or their similarity
// ratio exceeds MatchThreshold.
func Matches(candidate, target string) bool {
	_, ok := score(Canonical(candidate), Canonical(target))
	return ok
}

// BestMatch returns the target with the highest similarity to candidate
// among those that match. Ties break by shortest target, then
// lexicographic order. The returned string is the target as given, not its
// canonical form. ok is false when nothing matches.
func BestMatch(candidate string, targets []string) (best string, bestScore float64, ok bool) {
	candCanonical := Canonical(candidate)
	for _, target := range targets {
		s, matched := score(candCanonical, Canonical(target))
		if !matched {
			continue
		}
		if !ok || s > bestScore || (s == bestScore && preferTarget(target, best)) {
			best = target
			bestScore = s
			ok = true
		}
	}
	return best, bestScore, ok
}

// preferTarget reports whether a should replace b on a score tie.
func preferTarget(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// score computes the similarity of two canonical tokens and whether they
// match. Equal tokens score 1.0; containment scores at least the length
// ratio of the shorter to the longer.
func score(a, b string) (float64, bool) {
	if a == "" || b == "" {
		return 0, false
	}
	if a == b {
		return 1.0, true
	}

	r := ratio(a, b)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len([]rune(a)), len([]rune(b))
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if containment := float64(shorter) / float64(longer); containment > r {
			r = containment
		}
		return r, true
	}

	return r, r > MatchThreshold
}

// ratio is the raw edit-distance similarity of two strings.
func ratio(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(longest)
}
