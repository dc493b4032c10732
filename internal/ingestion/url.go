package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-relevance/internal/fetch"
)

var (
	// ErrHTTPRequestFailed wraps fetch failures so callers can map them
	// to an upstream error.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed wraps HTML-to-text failures.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestFromURL fetches a job posting, reduces it to cleaned text, and
// stamps metadata with the detected job board. With useBrowser set,
// pages that come back nearly empty are retried through headless Chrome.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(textContent))
	}

	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		textContent = renderWithBrowser(ctx, urlStr, textContent, contentSelectors, noiseSelectors, verbose)
	}

	cleanedText := CleanText(textContent)
	if verbose {
		log.Printf("[VERBOSE] Cleaned text: %d chars", len(cleanedText))
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)
	return cleanedText, metadata, nil
}

// renderWithBrowser retries the page through headless Chrome. Any failure
// returns the original HTTP-fetched text; a thin extraction beats none.
func renderWithBrowser(ctx context.Context, urlStr, fallbackText string, contentSelectors, noiseSelectors []string, verbose bool) string {
	if verbose {
		log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
			len(fallbackText), fetch.MinContentLength)
	}

	browserHTML, err := fetch.BrowserSimple(ctx, urlStr, verbose)
	if err != nil {
		if verbose {
			log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", err)
		}
		return fallbackText
	}

	rendered, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
	if err != nil {
		if verbose {
			log.Printf("[VERBOSE] Browser content extraction failed: %v", err)
		}
		return fallbackText
	}
	if verbose {
		log.Printf("[VERBOSE] Browser extracted text: %d chars", len(rendered))
	}
	return rendered
}
