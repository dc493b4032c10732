package fetch

import (
	"net/url"
	"strings"
)

// Platform identifies the job board serving a posting URL. Detection keys
// the extraction selectors; unrecognized hosts fall back to the generic
// job posting set.
type Platform string

// Known job board platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// hostPatterns maps host substrings to the platform they identify. Checked
// in order; first match wins.
var hostPatterns = []struct {
	fragment string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a posting URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	for _, pattern := range hostPatterns {
		if strings.Contains(host, pattern.fragment) {
			return pattern.platform
		}
	}
	return PlatformUnknown
}

// platformProfile carries the selector sets tuned for one job board.
type platformProfile struct {
	content []string
	noise   []string
}

var platformProfiles = map[Platform]platformProfile{
	PlatformGreenhouse: {
		content: []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		},
		noise: []string{
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		},
	},
	PlatformLever: {
		content: []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		},
		noise: []string{
			".apply-section",
			".lever-application-form",
			".posting-apply",
		},
	},
	PlatformWorkday: {
		content: []string{
			"[data-automation-id='jobDescription']",
			".WDXK",
			".gwt-HTML",
			".job-description",
		},
		noise: []string{
			"[data-automation-id='applyButton']",
			".application-section",
			".WDAF",
		},
	},
}

// commonNoiseSelectors strips application forms, legal boilerplate, share
// widgets, and consent banners on every platform. EEO statements matter
// here: their language ("race", "veteran status") pollutes keyword
// extraction with terms no posting actually requires.
var commonNoiseSelectors = []string{
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",

	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",

	".social-share",
	".share-buttons",
	".social-links",

	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// PlatformContentSelectors returns content selectors tuned for the given
// platform, or the generic job posting set for unknown platforms.
func PlatformContentSelectors(platform Platform) []string {
	if profile, ok := platformProfiles[platform]; ok {
		return profile.content
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the common noise selectors plus any
// platform-specific ones.
func PlatformNoiseSelectors(platform Platform) []string {
	selectors := make([]string, 0, len(commonNoiseSelectors)+4)
	selectors = append(selectors, commonNoiseSelectors...)
	if profile, ok := platformProfiles[platform]; ok {
		selectors = append(selectors, profile.noise...)
	}
	return selectors
}
