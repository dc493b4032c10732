package ingestion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Covers the full file-to-artifacts flow: ingest, write the cleaned text
// and metadata sidecar, then read both back and check they agree.
func TestIngestAndWriteOutput_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	inputPath := filepath.Join(tmpDir, "posting.txt")
	rawContent := "# Senior Software Engineer\r\n\r\n## Requirements\r\n- Go experience\r\n- Distributed systems"
	require.NoError(t, os.WriteFile(inputPath, []byte(rawContent), 0644))

	cleanedText, metadata, err := IngestFromFile(inputPath)
	require.NoError(t, err)

	outDir := filepath.Join(tmpDir, "out")
	require.NoError(t, WriteOutput(outDir, "posting", cleanedText, metadata))

	writtenText, err := os.ReadFile(filepath.Join(outDir, "posting.cleaned.txt"))
	require.NoError(t, err)
	assert.Equal(t, cleanedText, string(writtenText))
	assert.NotContains(t, string(writtenText), "\r")

	metaBytes, err := os.ReadFile(filepath.Join(outDir, "posting.meta.json"))
	require.NoError(t, err)

	var written Metadata
	require.NoError(t, json.Unmarshal(metaBytes, &written))
	assert.Equal(t, computeHash(cleanedText), written.Hash)
	assert.Empty(t, written.URL)

	_, err = time.Parse(time.RFC3339, written.Timestamp)
	assert.NoError(t, err, "timestamp should be RFC3339")
}

// Covers the URL flow end to end against a local server: fetch, extract,
// clean, and record provenance in the metadata sidecar.
func TestIngestFromURL_WriteOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<nav>Careers home</nav>
<main><h1>Staff Engineer</h1><p>Own the ingestion pipeline end to end.</p></main>
<footer>Legal</footer>
</body></html>`))
	}))
	defer server.Close()

	cleanedText, metadata, err := IngestFromURL(context.Background(), server.URL, false, false)
	require.NoError(t, err)

	outDir := t.TempDir()
	require.NoError(t, WriteOutput(outDir, "remote_posting", cleanedText, metadata))

	metaBytes, err := os.ReadFile(filepath.Join(outDir, "remote_posting.meta.json"))
	require.NoError(t, err)

	var written Metadata
	require.NoError(t, json.Unmarshal(metaBytes, &written))
	assert.Equal(t, server.URL, written.URL)
	assert.Equal(t, computeHash(cleanedText), written.Hash)
}

// The same posting served as markdown, plain text, and two HTML layouts
// should all yield the core content, with page chrome stripped from the
// HTML variants.
func TestIngestFromFile_JobBoardFormats(t *testing.T) {
	wantLines := []string{"Senior Software Engineer", "About the Role", "Requirements"}

	tests := []struct {
		name     string
		fixture  string
		stripped []string
	}{
		{
			name:    "markdown",
			fixture: "testdata/sample_job_markdown.txt",
		},
		{
			name:    "plain text",
			fixture: "testdata/sample_job_plain.txt",
		},
		{
			name:     "greenhouse-like HTML",
			fixture:  "testdata/sample_job_html.html",
			stripped: []string{"Navigation", "Header", "Footer"},
		},
		{
			name:     "lever-like HTML",
			fixture:  "testdata/sample_job_lever.html",
			stripped: []string{"Sidebar", "Ad content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanedText, metadata, err := IngestFromFile(tt.fixture)
			require.NoError(t, err)
			require.NotNil(t, metadata)

			for _, line := range wantLines {
				assert.Contains(t, cleanedText, line)
			}
			for _, chrome := range tt.stripped {
				assert.NotContains(t, cleanedText, chrome)
			}
		})
	}
}

// Format still matters to the hash: the markdown and plain fixtures carry
// the same posting but different markup, so dedup by hash must treat them
// as distinct documents.
func TestIngestFromFile_HashDistinguishesFormats(t *testing.T) {
	_, markdownMeta, err := IngestFromFile("testdata/sample_job_markdown.txt")
	require.NoError(t, err)

	_, plainMeta, err := IngestFromFile("testdata/sample_job_plain.txt")
	require.NoError(t, err)

	assert.NotEqual(t, markdownMeta.Hash, plainMeta.Hash)
}
