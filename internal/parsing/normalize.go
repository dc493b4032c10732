package parsing

import (
	"strings"

	"github.com/jonathan/resume-relevance/internal/fuzzy"
	"github.com/jonathan/resume-relevance/internal/types"
)

// NormalizeSkills lower-cases, cleans, and deduplicates a skill list.
// Synonym variants collapse to a single entry through their canonical
// form; the first spelling seen wins.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}

	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))

	for _, skill := range skills {
		cleaned := fuzzy.Normalize(skill)
		if cleaned == "" {
			continue
		}
		key := fuzzy.Canonical(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, cleaned)
	}

	return normalized
}

// NormalizeProfile cleans a freshly extracted profile in place: skills and
// certifications are canonicalized and deduplicated, preferred skills lose
// any entry already required, and list fields drop blanks. Scoring assumes
// profiles have been through this.
func NormalizeProfile(p *types.Profile) {
	if p == nil {
		return
	}

	p.Name = collapseSpaces(p.Name)

	if p.Skills != nil {
		p.Skills.Required = NormalizeSkills(p.Skills.Required)
		p.Skills.Preferred = dropCanonicalOverlap(NormalizeSkills(p.Skills.Preferred), p.Skills.Required)
	}

	p.Projects = normalizeLines(p.Projects)
	p.Certifications = NormalizeSkills(p.Certifications)
	p.Education = normalizeEducation(p.Education)

	if p.ExperienceYears != nil && *p.ExperienceYears < 0 {
		p.ExperienceYears = nil
	}
}

// dropCanonicalOverlap removes from skills any entry whose canonical form
// appears in taken. A skill listed as both required and preferred counts
// once, as required.
func dropCanonicalOverlap(skills, taken []string) []string {
	if len(skills) == 0 || len(taken) == 0 {
		return skills
	}

	takenSet := make(map[string]bool, len(taken))
	for _, s := range taken {
		takenSet[fuzzy.Canonical(s)] = true
	}

	kept := skills[:0]
	for _, s := range skills {
		if !takenSet[fuzzy.Canonical(s)] {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// normalizeLines trims entries, collapses internal whitespace, and
// deduplicates case-insensitively while keeping the original casing.
func normalizeLines(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}

	out := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))

	for _, line := range lines {
		cleaned := collapseSpaces(line)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cleaned)
	}

	return out
}

// normalizeEducation trims degree and field text and drops entries with no
// degree. Duplicate degree/field pairs collapse to one.
func normalizeEducation(entries []types.Education) []types.Education {
	if len(entries) == 0 {
		return entries
	}

	out := make([]types.Education, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		degree := collapseSpaces(e.Degree)
		if degree == "" {
			continue
		}
		field := collapseSpaces(e.Field)

		key := strings.ToLower(degree) + "|" + strings.ToLower(field)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, types.Education{Degree: degree, Field: field})
	}

	return out
}

// collapseSpaces trims and squeezes runs of whitespace to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
