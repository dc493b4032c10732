// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-relevance/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens a joined list for single-line display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// PrintProfile outputs a human-readable summary of a parsed profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:   %s\n", profile.Name))
	}
	if profile.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Years:  %d\n", *profile.ExperienceYears))
	}
	sb.WriteString("\n")

	if profile.Skills != nil && len(profile.Skills.Required) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(profile.Skills.Required), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills.Required[i]))
		}
		if len(profile.Skills.Required) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills.Required)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if profile.Skills != nil && len(profile.Skills.Preferred) > 0 {
		sb.WriteString("Preferred Skills:\n")
		count := min(len(profile.Skills.Preferred), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills.Preferred[i]))
		}
		if len(profile.Skills.Preferred) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills.Preferred)-3))
		}
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(profile.Education), 3)
		for i := 0; i < count; i++ {
			edu := profile.Education[i]
			if edu.Field != "" {
				sb.WriteString(fmt.Sprintf("  • %s in %s\n", edu.Degree, edu.Field))
			} else {
				sb.WriteString(fmt.Sprintf("  • %s\n", edu.Degree))
			}
		}
	}

	title := "PARSED JOB PROFILE"
	if profile.Kind == types.KindResume {
		title = "PARSED RESUME PROFILE"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the scored evaluation with the gap breakdown.
func (p *Printer) PrintEvaluation(ev *types.Evaluation) {
	if ev == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Relevance:  %.1f / 100\n", ev.RelevanceScore))
	sb.WriteString(fmt.Sprintf("Verdict:    %s\n", ev.FitVerdict))
	sb.WriteString(fmt.Sprintf("Hard:       %.1f   Semantic: %.1f\n", ev.HardMatchScore, ev.SemanticMatchScore))
	if ev.Degraded {
		sb.WriteString("⚠ semantic score unavailable, hard match only\n")
	}

	if len(ev.MissingSkills) > 0 {
		sb.WriteString("\nMissing Skills:\n")
		count := min(len(ev.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", ev.MissingSkills[i]))
		}
		if len(ev.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ev.MissingSkills)-maxItemsToShow))
		}
	}

	if len(ev.MissingCertifications) > 0 {
		sb.WriteString("\nMissing Certifications:\n")
		count := min(len(ev.MissingCertifications), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", ev.MissingCertifications[i]))
		}
		if len(ev.MissingCertifications) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ev.MissingCertifications)-3))
		}
	}

	p.printBox("EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// RankedEntry is one row of a batch ranking for display.
type RankedEntry struct {
	Label      string
	Evaluation *types.Evaluation
	Err        error
}

// PrintRanking outputs batch results ranked best first, error entries last.
func (p *Printer) PrintRanking(entries []RankedEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates evaluated: %d\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := entries[i]
		if entry.Err != nil {
			sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(entry.Label, 45)))
			sb.WriteString(fmt.Sprintf("    Error: %s\n", truncate(entry.Err.Error(), 40)))
			continue
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(entry.Label, 45)))
		sb.WriteString(fmt.Sprintf("    Score: %.1f  (%s)", entry.Evaluation.RelevanceScore, entry.Evaluation.FitVerdict))
		if entry.Evaluation.Degraded {
			sb.WriteString("  ⚠ degraded")
		}
		sb.WriteString("\n")
		if len(entry.Evaluation.MissingSkills) > 0 {
			skills := strings.Join(entry.Evaluation.MissingSkills, ", ")
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", truncate(skills, 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(entries)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}

// PrintSuggestions outputs improvement suggestions grouped as given.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuggestions(suggestions []types.ImprovementSuggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO GAPS TO ADDRESS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d suggestions:\n\n", len(suggestions)))

	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", s.Category, s.Priority))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(s.Suggestion, 50)))
		for _, action := range s.SpecificActions {
			sb.WriteString(fmt.Sprintf("    - %s\n", truncate(action, 48)))
		}
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("IMPROVEMENT SUGGESTIONS", sb.String())
}
