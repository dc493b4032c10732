package scoring

import (
	"github.com/jonathan/resume-relevance/internal/types"
)

// AnalyzeGaps projects a hard-match result into a gap report. A nil result
// yields a report with empty, non-nil slices.
func AnalyzeGaps(hard *types.MatchResult) types.GapReport {
	if hard == nil {
		return types.GapReport{
			MissingSkills:         []string{},
			MissingProjects:       []string{},
			MissingCertifications: []string{},
		}
	}
	return types.GapReport{
		MissingSkills:         hard.MissingSkills,
		MissingProjects:       hard.MissingProjects,
		MissingCertifications: hard.MissingCertifications,
	}
}
