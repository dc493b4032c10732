package prompts

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		key     string
		wantErr string
	}{
		{
			name: "known key",
			file: "suggest.json",
			key:  "generate-suggestions",
		},
		{
			name:    "missing file",
			file:    "nonexistent.json",
			key:     "generate-suggestions",
			wantErr: "failed to read prompt file",
		},
		{
			name:    "missing key",
			file:    "suggest.json",
			key:     "nonexistent-key",
			wantErr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearCache()

			prompt, err := Get(tt.file, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, prompt, "improvement suggestions")
		})
	}
}

func TestGet_CachedReadMatchesFirstRead(t *testing.T) {
	ClearCache()

	first, err := Get("suggest.json", "generate-suggestions")
	require.NoError(t, err)

	second, err := Get("suggest.json", "generate-suggestions")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGet_ConcurrentReaders(t *testing.T) {
	ClearCache()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Get("suggest.json", "generate-suggestions"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Get failed: %v", err)
	}
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("suggest.json", "generate-suggestions")
		assert.NotEmpty(t, prompt)
	})
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "generate-suggestions")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "substitutes placeholders",
			template: "Job title: {{.JobTitle}} ({{.FitVerdict}} fit)",
			data:     map[string]string{"JobTitle": "Backend Engineer", "FitVerdict": "High"},
			want:     "Job title: Backend Engineer (High fit)",
		},
		{
			name:     "repeated placeholder",
			template: "{{.Skill}}, more {{.Skill}}",
			data:     map[string]string{"Skill": "Go"},
			want:     "Go, more Go",
		},
		{
			name:     "no placeholders",
			template: "static text stays as is",
			data:     map[string]string{"Unused": "value"},
			want:     "static text stays as is",
		},
		{
			name:     "missing data leaves placeholder intact",
			template: "Missing skills: {{.MissingSkills}}",
			data:     map[string]string{},
			want:     "Missing skills: {{.MissingSkills}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("suggest.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "generate-suggestions")
}
