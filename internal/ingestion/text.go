// Package ingestion turns resume and job posting sources (files, URLs)
// into cleaned text ready for profile extraction.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-relevance/internal/fetch"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes document text while keeping its structure:
// headings, bullets, and indentation survive; line endings, runs of
// spaces, and runs of blank lines are collapsed.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, len(lines))
	for i, line := range lines {
		cleaned[i] = cleanLine(line)
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine normalizes one line. Markdown headings lose their indent,
// bullets keep theirs, and everything else keeps its indent with inner
// whitespace collapsed to single spaces.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	switch {
	case strings.HasPrefix(trimmed, "#"):
		return trimmed
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return strings.Repeat(" ", indent) + trimmed
	}

	collapsed := whitespaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + collapsed
}

// IngestFromFile reads a document, cleans it, and returns cleaned text
// with metadata. HTML files are reduced to their main text first, so
// saved job board pages ingest the same way fetched ones do.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		extracted, err := fetch.ExtractMainText(text, fetch.JobPostingSelectors())
		if err != nil {
			return "", nil, fmt.Errorf("failed to extract text from HTML: %w", err)
		}
		text = extracted
	}

	cleanedText := CleanText(text)
	return cleanedText, NewMetadata(cleanedText, ""), nil
}

// WriteOutput writes the cleaned text and its metadata sidecar under
// outDir, creating the directory if needed.
func WriteOutput(outDir, baseName, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, baseName+".cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(outDir, baseName+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
