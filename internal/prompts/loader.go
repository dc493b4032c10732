// Package prompts serves the LLM prompt templates shipped with the
// engine. Templates live in JSON files, one map of key to template per
// file, embedded at compile time so the binary is self-contained.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	fileCache   = make(map[string]map[string]string)
	fileCacheMu sync.RWMutex
)

// Get returns the template stored under key in the named file. The
// filename carries no path ("suggest.json").
func Get(filename, key string) (string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates the caller cannot run without.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with the given values.
// Placeholders with no matching key are left in place.
func Format(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, "{{."+key+"}}", value)
	}
	return template
}

// List returns the template keys available in the named file.
func List(filename string) ([]string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearCache drops all cached files so the next Get re-reads them.
func ClearCache() {
	fileCacheMu.Lock()
	fileCache = make(map[string]map[string]string)
	fileCacheMu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	fileCacheMu.RLock()
	templates, ok := fileCache[filename]
	fileCacheMu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	fileCacheMu.Lock()
	fileCache[filename] = templates
	fileCacheMu.Unlock()
	return templates, nil
}
