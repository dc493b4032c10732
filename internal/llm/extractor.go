package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes one structured-extraction task: what the
// model is being asked to pull out of a document and the JSON shape it
// must answer with.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField is one field of the expected JSON output.
type SchemaField struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// BuildExtractionPrompt renders a schema and an input document into the
// extraction prompt. The output-shape block mirrors the JSON Schema the
// response is later validated against.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		writeSchemaField(&sb, field, i == len(schema.Fields)-1)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

func writeSchemaField(sb *strings.Builder, field SchemaField, last bool) {
	typeHint := field.Type
	if typeHint == "" {
		typeHint = "string"
	}

	fmt.Fprintf(sb, "  %q: %s", field.Name, typeHint)
	if field.Required {
		sb.WriteString(" (required)")
	}
	if field.Description != "" {
		fmt.Fprintf(sb, " // %s", field.Description)
	}
	if !last {
		sb.WriteString(",")
	}
	sb.WriteString("\n")
}

// ResumeProfileSchema is the extraction task for resume text: skills,
// education history, total experience, projects, and certifications.
func ResumeProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeProfile",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract structured candidate information from a raw resume.
IMPORTANT: Preserve the exact wording of skill, project, and certification names.
Goal: Extract skills, education history, total experience, projects, and certifications.
EXCLUDE: Contact details, references, hobbies, and page furniture.`,
		Fields: []SchemaField{
			{
				Name:        "name",
				Type:        "\"string\"",
				Description: "Candidate name as written on the resume",
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "Every technical skill, tool, and technology the candidate lists - copy each verbatim",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        "[{\"degree\": \"string\", \"field\": \"string\"}]",
				Description: "Each degree held, with its field of study when stated",
			},
			{
				Name:        "experience_years",
				Type:        "number",
				Description: "Total years of professional experience; omit when the resume does not state or imply it",
			},
			{
				Name:        "projects",
				Type:        "[\"string\"]",
				Description: "Named projects the candidate built or contributed to - copy names verbatim",
			},
			{
				Name:        "certifications",
				Type:        "[\"string\"]",
				Description: "Professional certifications held - copy names verbatim",
			},
		},
	}
}

// JobProfileSchema is the extraction task for job postings: required and
// preferred skills, education and experience requirements, and wanted
// projects or certifications.
func JobProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobProfile",
		Description: `You are an expert job posting parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract and categorize hiring requirements from a raw job posting.
IMPORTANT: Preserve the exact wording from the original text.
Goal: Extract required skills, preferred skills, education requirements, experience requirements, and any wanted projects or certifications.
EXCLUDE: Application form fields, EEO statements, legal disclaimers, generic "About Company" boilerplate.`,
		Fields: []SchemaField{
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "Job title as posted",
			},
			{
				Name:        "required_skills",
				Type:        "[\"string\"]",
				Description: "Must-have skills and technologies - copy each verbatim",
				Required:    true,
			},
			{
				Name:        "preferred_skills",
				Type:        "[\"string\"]",
				Description: "Nice-to-have skills and technologies - copy each verbatim",
			},
			{
				Name:        "education",
				Type:        "[{\"degree\": \"string\", \"field\": \"string\"}]",
				Description: "Degree requirements with field of study when stated",
			},
			{
				Name:        "experience_years",
				Type:        "number",
				Description: "Minimum years of experience required; for a range use the lower bound; omit when not stated",
			},
			{
				Name:        "projects",
				Type:        "[\"string\"]",
				Description: "Kinds of projects the posting asks for evidence of",
			},
			{
				Name:        "certifications",
				Type:        "[\"string\"]",
				Description: "Certifications the posting requires or prefers",
			},
		},
	}
}
