// Package parsing extracts structured profiles from cleaned resume and job
// posting text. Extraction is heuristic by default; an LLM-backed path
// produces richer profiles when an API key is available.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-relevance/internal/types"
)

var (
	sectionHeaders = `education|experience|projects?|skills|certifications?|summary|responsibilities|duties`

	yearsRangeRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:-|–|to)\s*(\d+)\+?\s*years?`)
	yearsSimpleRe  = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?(?:\w+\s+)?(?:experience|exp\b)`)
	yearsTrailerRe = regexp.MustCompile(`(?i)experience\s*:?\s*(\d+)\+?\s*years?`)

	degreeTokenRe = regexp.MustCompile(`(?i)\b(bachelor(?:'?s)?|master(?:'?s)?|ph\.?d\.?|doctorate|associate(?:'?s)?|b\.?sc?\.?|m\.?sc?\.?|b\.?a\.?|m\.?a\.?|b\.?tech\b|m\.?tech\b|mba)\b`)
	fieldInRe     = regexp.MustCompile(`(?i)\bin\s+([^,\n(]+)`)
	fieldOfRe     = regexp.MustCompile(`(?i)\bof\s+([^,\n(]+)`)
)

// ExtractResumeProfile parses cleaned resume text into a resume profile
// using keyword tables and section heuristics. It never fails; sparse text
// yields a sparse profile.
func ExtractResumeProfile(text string) *types.Profile {
	profile := &types.Profile{
		ID:             uuid.New(),
		Kind:           types.KindResume,
		Name:           extractCandidateName(text),
		Skills:         &types.SkillSet{Required: extractSkills(text)},
		Projects:       extractSectionItems(text, `(?:personal\s+|academic\s+)?projects?`),
		Education:      extractEducation(text),
		Certifications: extractCertifications(text),
		RawText:        text,
	}

	if years := extractResumeYears(text); years != nil {
		profile.ExperienceYears = years
	}

	NormalizeProfile(profile)
	return profile
}

// ExtractJobProfile parses cleaned job posting text into a job profile.
// Required skills come from requirement sections when the posting has
// them, otherwise from the whole text; preferred skills come only from
// nice-to-have sections.
func ExtractJobProfile(text string) *types.Profile {
	required := extractSkills(sectionText(text, requiredSectionRes))
	if len(required) == 0 {
		required = extractSkills(text)
	}

	preferred := excludeSkills(extractSkills(sectionText(text, preferredSectionRes)), required)

	profile := &types.Profile{
		ID:   uuid.New(),
		Kind: types.KindJob,
		Name: extractJobTitle(text),
		Skills: &types.SkillSet{
			Required:  required,
			Preferred: preferred,
		},
		Education:      extractEducation(text),
		Certifications: extractCertifications(text),
		RawText:        text,
	}

	if years := extractRequiredYears(text); years != nil {
		profile.ExperienceYears = years
	}

	NormalizeProfile(profile)
	return profile
}

var (
	requiredSectionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)\b(?:required|must\s+have|essential)\b[^\n]*?\b(?:skills|requirements|qualifications)\b\s*:?\s*\n(.*?)(?:\n\s*\b(?:preferred|nice|optional|responsibilities|duties)\b|\z)`),
		regexp.MustCompile(`(?is)\brequirements\b\s*:?\s*\n(.*?)(?:\n\s*\b(?:preferred|nice|optional|responsibilities|duties)\b|\z)`),
	}
	preferredSectionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)\b(?:preferred|nice\s+to\s+have|optional|plus)\b[^\n]*?(?:\b(?:skills|requirements|qualifications)\b)?\s*:?\s*\n(.*?)(?:\n\s*\b(?:responsibilities|duties)\b|\z)`),
	}
)

// sectionText concatenates every capture of the given section patterns.
func sectionText(text string, patterns []*regexp.Regexp) string {
	var sb strings.Builder
	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if len(match) > 1 {
				sb.WriteString(match[1])
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// extractSkills scans text for known skill keywords. Matches must sit on
// token boundaries so "go" never fires inside "good" or "django".
func extractSkills(text string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for _, skill := range skillKeywords {
		if containsKeyword(textLower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// containsKeyword reports whether keyword occurs in textLower bounded by
// non-alphanumeric characters on both sides.
func containsKeyword(textLower, keyword string) bool {
	for start := 0; ; {
		idx := strings.Index(textLower[start:], keyword)
		if idx < 0 {
			return false
		}
		idx += start

		boundedLeft := idx == 0 || !isWordByte(textLower[idx-1])
		end := idx + len(keyword)
		boundedRight := end == len(textLower) || !isWordByte(textLower[end])
		if boundedLeft && boundedRight {
			return true
		}

		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// excludeSkills returns the entries of skills not present in taken.
func excludeSkills(skills, taken []string) []string {
	if len(skills) == 0 {
		return skills
	}
	seen := make(map[string]bool, len(taken))
	for _, s := range taken {
		seen[s] = true
	}
	var out []string
	for _, s := range skills {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// extractSectionItems captures the lines of a named section, one item per
// nonempty line, stripped of bullet markers.
func extractSectionItems(text, sectionName string) []string {
	re := regexp.MustCompile(`(?is)(?:^|\n)\s*` + sectionName + `\s*:?\s*\n(.*?)(?:\n\s*(?:` + sectionHeaders + `)\s*:?\s*\n|\z)`)

	var items []string
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		for _, line := range strings.Split(match[1], "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimLeft(line, "-*• \t")
			if len(line) < 4 || len(line) > 120 {
				continue
			}
			// Keep the item name, not a trailing description.
			if name, _, found := strings.Cut(line, ":"); found {
				line = strings.TrimSpace(name)
			}
			items = append(items, line)
		}
	}
	return items
}

// extractEducation finds degree statements anywhere in the text, one entry
// per line that names a degree.
func extractEducation(text string) []types.Education {
	var entries []types.Education
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		loc := degreeTokenRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}

		entry := types.Education{
			Degree: line[loc[2]:loc[3]],
			Field:  extractDegreeField(line, line[loc[1]:]),
		}

		key := strings.ToLower(entry.Degree + "|" + entry.Field)
		if !seen[key] {
			seen[key] = true
			entries = append(entries, entry)
		}
	}
	return entries
}

// extractDegreeField pulls the field of study that follows a degree token.
// An "in" clause wins over an "of" clause since "of Science" and "of Arts"
// name the degree, not the field.
func extractDegreeField(line, afterDegree string) string {
	if match := fieldInRe.FindStringSubmatch(afterDegree); match != nil {
		if field := cleanFieldText(match[1]); field != "" {
			return field
		}
	}
	if match := fieldOfRe.FindStringSubmatch(afterDegree); match != nil {
		if field := cleanFieldText(match[1]); field != "" && !isDegreeQualifier(field) {
			return field
		}
	}
	return findEducationField(line)
}

// cleanFieldText trims a captured field and cuts trailers like
// "Computer Science from MIT" or "CS or related field".
func cleanFieldText(field string) string {
	field = strings.TrimSpace(field)
	lower := strings.ToLower(field) + " "
	for _, sep := range []string{" from ", " at ", " - ", " or ", " required ", " preferred "} {
		if idx := strings.Index(lower, sep); idx >= 0 {
			field = field[:idx]
			lower = lower[:idx] + " "
		}
	}
	field = strings.TrimRight(strings.TrimSpace(field), ".")
	if len(field) > 60 {
		return ""
	}
	return field
}

// isDegreeQualifier reports whether an "of" capture names the degree
// flavor rather than a field of study.
func isDegreeQualifier(field string) bool {
	switch strings.ToLower(field) {
	case "science", "arts", "applied science", "technology", "philosophy":
		return true
	}
	return false
}

// findEducationField scans a line for a known field of study.
func findEducationField(line string) string {
	lineLower := strings.ToLower(line)
	for _, field := range educationFields {
		if strings.Contains(lineLower, field) {
			return field
		}
	}
	return ""
}

// extractCertifications collects known certification names plus the lines
// of an explicit certifications section.
func extractCertifications(text string) []string {
	textLower := strings.ToLower(text)
	var certs []string
	for _, cert := range certificationKeywords {
		if containsKeyword(textLower, cert) {
			certs = append(certs, cert)
		}
	}
	certs = append(certs, extractSectionItems(text, `certifications?`)...)
	return dropSubsumed(certs)
}

// dropSubsumed removes entries wholly contained in a longer entry, so a
// keyword hit like "aws certified" folds into the full certification line.
func dropSubsumed(items []string) []string {
	if len(items) < 2 {
		return items
	}
	kept := make([]string, 0, len(items))
	for i := 0; i < len(items); i++ {
		lower := strings.ToLower(items[i])
		subsumed := false
		for j := 0; j < len(items); j++ {
			if i == j {
				continue
			}
			other := strings.ToLower(items[j])
			if len(other) > len(lower) && strings.Contains(other, lower) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, items[i])
		}
	}
	return kept
}

// extractResumeYears returns the largest years-of-experience claim in the
// text, or nil when none is stated. Ranges contribute their lower bound.
func extractResumeYears(text string) *int {
	best := -1
	rangeSpans := yearsRangeRe.FindAllStringIndex(text, -1)

	for _, match := range yearsRangeRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(match[1]); err == nil && n > best {
			best = n
		}
	}
	for _, re := range []*regexp.Regexp{yearsSimpleRe, yearsTrailerRe} {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			// Skip matches already counted as part of a range.
			if insideAny(rangeSpans, loc[0]) {
				continue
			}
			if n, err := strconv.Atoi(text[loc[2]:loc[3]]); err == nil && n > best {
				best = n
			}
		}
	}

	if best < 0 {
		return nil
	}
	return &best
}

// extractRequiredYears returns the first years requirement in a job
// posting, or nil when the posting does not state one. Ranges like
// "3-5 years" resolve to their lower bound.
func extractRequiredYears(text string) *int {
	for _, re := range []*regexp.Regexp{yearsRangeRe, yearsSimpleRe, yearsTrailerRe} {
		if match := re.FindStringSubmatch(text); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil {
				return &n
			}
		}
	}
	return nil
}

// insideAny reports whether pos falls within one of the spans.
func insideAny(spans [][]int, pos int) bool {
	for _, span := range spans {
		if pos >= span[0] && pos < span[1] {
			return true
		}
	}
	return false
}

// extractCandidateName takes the first short line free of digits and
// section keywords as the candidate name.
func extractCandidateName(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i >= 5 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsAny(line, "@0123456789") {
			continue
		}
		if len(strings.Fields(line)) > 4 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum") {
			continue
		}
		return line
	}
	return ""
}

// extractJobTitle takes the first nonempty line as the posting title.
func extractJobTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "Unknown Position"
}
