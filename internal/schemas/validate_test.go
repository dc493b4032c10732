package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResumeProfile_Valid(t *testing.T) {
	doc := `{
		"name": "Jane Candidate",
		"skills": ["python", "sql", "docker"],
		"education": [{"degree": "Bachelor of Science", "field": "computer science"}],
		"experience_years": 4,
		"projects": ["fraud detection pipeline"],
		"certifications": ["aws certified developer"]
	}`

	err := ValidateResumeProfile(doc)
	assert.NoError(t, err)
}

func TestValidateResumeProfile_MissingSkills(t *testing.T) {
	doc := `{"name": "Jane Candidate"}`

	err := ValidateResumeProfile(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateResumeProfile_NullExperienceAllowed(t *testing.T) {
	doc := `{"skills": ["go"], "experience_years": null}`

	err := ValidateResumeProfile(doc)
	assert.NoError(t, err)
}

func TestValidateResumeProfile_NegativeExperienceRejected(t *testing.T) {
	doc := `{"skills": ["go"], "experience_years": -2}`

	err := ValidateResumeProfile(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateResumeProfile_UnknownFieldRejected(t *testing.T) {
	doc := `{"skills": ["go"], "salary": 120000}`

	err := ValidateResumeProfile(doc)
	require.Error(t, err)
}

func TestValidateJobProfile_Valid(t *testing.T) {
	doc := `{
		"title": "Senior Data Engineer",
		"required_skills": ["python", "sql", "spark"],
		"preferred_skills": ["airflow"],
		"education": [{"degree": "Bachelor", "field": "computer science"}],
		"experience_years": 5,
		"certifications": []
	}`

	err := ValidateJobProfile(doc)
	assert.NoError(t, err)
}

func TestValidateJobProfile_MissingRequiredSkills(t *testing.T) {
	doc := `{"title": "Senior Data Engineer"}`

	err := ValidateJobProfile(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJobProfile_WrongSkillType(t *testing.T) {
	doc := `{"required_skills": "python"}`

	err := ValidateJobProfile(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateSuggestions_Valid(t *testing.T) {
	doc := `{
		"suggestions": [
			{
				"category": "skills",
				"priority": "high",
				"suggestion": "Add Spark experience through a data pipeline project.",
				"specific_actions": ["Build an ETL job with PySpark"]
			},
			{
				"category": "certifications",
				"priority": "low",
				"suggestion": "Consider the AWS Solutions Architect certification."
			}
		]
	}`

	err := ValidateSuggestions(doc)
	assert.NoError(t, err)
}

func TestValidateSuggestions_BadCategory(t *testing.T) {
	doc := `{
		"suggestions": [
			{"category": "salary", "priority": "high", "suggestion": "Ask for more money."}
		]
	}`

	err := ValidateSuggestions(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object"
	}`

	err := ValidateJSONString(schemaContent, "{ invalid json }")
	require.Error(t, err)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSONString_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	jsonContent := `{"person": {}}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	// Check that the field path includes nested field
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}
