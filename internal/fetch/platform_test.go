package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{"greenhouse board", "https://job-boards.greenhouse.io/acme/jobs/7063751", PlatformGreenhouse},
		{"greenhouse classic", "https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"lever posting", "https://jobs.lever.co/acme/a1b2c3", PlatformLever},
		{"workday tenant", "https://acme.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"workday root", "https://workday.com/jobs", PlatformWorkday},
		{"direct company site", "https://example.com/careers/backend-engineer", PlatformUnknown},
		{"aggregator", "https://linkedin.com/jobs/view/123", PlatformUnknown},
		{"unparseable", "://jobs", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestDetectPlatform_CaseInsensitiveHost(t *testing.T) {
	assert.Equal(t, PlatformGreenhouse, DetectPlatform("https://Boards.Greenhouse.IO/acme/jobs/1"))
}

func TestPlatformContentSelectors(t *testing.T) {
	greenhouse := PlatformContentSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, ".job__description.body")

	workday := PlatformContentSelectors(PlatformWorkday)
	assert.Contains(t, workday, "[data-automation-id='jobDescription']")

	// unknown platforms get the generic posting set
	unknown := PlatformContentSelectors(PlatformUnknown)
	assert.Contains(t, unknown, ".job-description")
	assert.Contains(t, unknown, "main")
}

func TestPlatformNoiseSelectors(t *testing.T) {
	lever := PlatformNoiseSelectors(PlatformLever)
	assert.Contains(t, lever, "form")
	assert.Contains(t, lever, ".eeo-statement")
	assert.Contains(t, lever, ".lever-application-form")

	// unknown platforms still strip the common noise
	unknown := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, unknown, ".cookie-banner")
	assert.NotContains(t, unknown, ".lever-application-form")
}

func TestPlatformNoiseSelectors_DoesNotShareBackingArray(t *testing.T) {
	first := PlatformNoiseSelectors(PlatformGreenhouse)
	second := PlatformNoiseSelectors(PlatformLever)

	assert.Contains(t, first, ".post-apply")
	assert.NotContains(t, second, ".post-apply")
}
