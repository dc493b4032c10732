package schemas

import _ "embed"

// Schemas are embedded so validation works regardless of the directory
// the binary runs from.
var (
	//go:embed resume_profile.schema.json
	resumeProfileSchema string

	//go:embed job_profile.schema.json
	jobProfileSchema string

	//go:embed suggestions.schema.json
	suggestionsSchema string
)

// ValidateResumeProfile validates an extracted resume profile document.
func ValidateResumeProfile(jsonContent string) error {
	return ValidateJSONString(resumeProfileSchema, jsonContent)
}

// ValidateJobProfile validates an extracted job profile document.
func ValidateJobProfile(jsonContent string) error {
	return ValidateJSONString(jobProfileSchema, jsonContent)
}

// ValidateSuggestions validates a generated suggestions document.
func ValidateSuggestions(jsonContent string) error {
	return ValidateJSONString(suggestionsSchema, jsonContent)
}
