// Package scoring implements the relevance scoring engine: discrete
// hard-matching, vector similarity, weighted aggregation, gap analysis,
// and batch evaluation. All scoring functions are pure and safe for
// unrestricted parallel use.
package scoring

import (
	"math"

	"github.com/jonathan/resume-relevance/internal/fuzzy"
	"github.com/jonathan/resume-relevance/internal/types"
)

// Coverage weights within the skill sub-score.
const (
	requiredSkillWeight  = 0.7
	preferredSkillWeight = 0.3
)

// Score computes the hard-match result for one resume against one job
// description. Sub-scores are bounded [0,100] and are not combined here;
// weighting is the aggregator's job.
func Score(resume, jd *types.Profile) (*types.MatchResult, error) {
	if resume == nil {
		return nil, &IncompleteProfileError{Field: "resume profile"}
	}
	if jd == nil {
		return nil, &IncompleteProfileError{Field: "job profile"}
	}
	if resume.Skills == nil {
		return nil, &IncompleteProfileError{ProfileID: resume.ID, Field: "skills"}
	}
	if jd.Skills == nil {
		return nil, &IncompleteProfileError{ProfileID: jd.ID, Field: "skills"}
	}

	resumeSkills := resume.Skills.Flat()
	skillScore, matched, missing := scoreSkills(jd.Skills, resumeSkills)
	projectScore, missingProjects := scoreCoverage(jd.Projects, resume.Projects)
	certScore, missingCerts := scoreCoverage(jd.Certifications, resume.Certifications)

	return &types.MatchResult{
		SkillScore:            skillScore,
		EducationScore:        scoreEducation(resume.Education, jd.Education),
		ExperienceScore:       scoreExperience(resume.ExperienceYears, jd.ExperienceYears),
		ProjectScore:          projectScore,
		CertificationScore:    certScore,
		MatchedSkills:         matched,
		MissingSkills:         missing,
		MissingProjects:       missingProjects,
		MissingCertifications: missingCerts,
	}, nil
}

// scoreSkills computes the 0-100 skill sub-score. Required coverage is
// weighted 0.7 and preferred coverage 0.3. An empty required list means
// the requirement is trivially satisfied. Matched and missing partition
// the required list and report skills as the job profile spells them.
func scoreSkills(jdSkills *types.SkillSet, resumeSkills []string) (float64, []string, []string) {
	matched, missing := partitionByMatch(jdSkills.Required, resumeSkills)

	if len(jdSkills.Required) == 0 {
		return 100, matched, missing
	}

	requiredCoverage := float64(len(matched)) / float64(len(jdSkills.Required))

	preferredCoverage := 1.0
	if len(jdSkills.Preferred) > 0 {
		preferredMatched, _ := partitionByMatch(jdSkills.Preferred, resumeSkills)
		preferredCoverage = float64(len(preferredMatched)) / float64(len(jdSkills.Preferred))
	}

	score := 100 * (requiredSkillWeight*requiredCoverage + preferredSkillWeight*preferredCoverage)
	return clampScore(score), matched, missing
}

// partitionByMatch splits wanted into the entries that fuzzy-match some
// candidate and those that match none.
func partitionByMatch(wanted, candidates []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, want := range wanted {
		if _, _, ok := fuzzy.BestMatch(want, candidates); ok {
			matched = append(matched, want)
		} else {
			missing = append(missing, want)
		}
	}
	return matched, missing
}

// scoreCoverage scales the proportion of wanted entries found among
// candidates to 0-100. A job that wants nothing scores 100.
func scoreCoverage(wanted, candidates []string) (float64, []string) {
	if len(wanted) == 0 {
		return 100, []string{}
	}
	matched, missing := partitionByMatch(wanted, candidates)
	return clampScore(100 * float64(len(matched)) / float64(len(wanted))), missing
}

// scoreExperience implements the years-of-experience rule: no stated
// requirement scores 100, a stated requirement with unknown resume years
// scores 0, otherwise the ratio capped at 100.
func scoreExperience(resumeYears, requiredYears *int) float64 {
	if requiredYears == nil || *requiredYears <= 0 {
		return 100
	}
	if resumeYears == nil {
		return 0
	}
	ratio := float64(*resumeYears) / float64(*requiredYears)
	return clampScore(math.Min(100, 100*ratio))
}

// clampScore bounds a score to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
