package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// getBinaryPath returns the path to the relevance_engine binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "relevance_engine"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/%s ./cmd/%s'", binaryPath, binaryName, binaryName)
	}

	return binaryPath
}

// envWithout returns the current environment minus the named variables.
// Tests use it to force the offline heuristic and lexical paths even when
// a developer's .env carries real credentials.
func envWithout(keys ...string) []string {
	drop := make(map[string]bool, len(keys))
	for _, key := range keys {
		drop[key] = true
	}

	var env []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if !drop[name] {
			env = append(env, kv)
		}
	}
	return env
}
