// Package types provides type definitions for structured data used throughout the relevance engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProfileKind discriminates the two sides of an evaluation.
type ProfileKind string

// Profile kinds
const (
	KindResume ProfileKind = "resume"
	KindJob    ProfileKind = "job"
)

// SkillSet holds normalized skill strings. Job profiles split skills into
// required and preferred subsets; resume profiles carry their flat skill
// list in Required and leave Preferred empty. Entries are expected to be
// lower-cased, whitespace-collapsed, and deduplicated before scoring
// (see parsing.NormalizeProfile).
type SkillSet struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred,omitempty"`
}

// Flat returns the union of required and preferred skills, preserving
// first-seen order. This is the candidate set used when the profile is a
// resume.
func (s *SkillSet) Flat() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Required)+len(s.Preferred))
	flat := make([]string, 0, len(s.Required)+len(s.Preferred))
	for _, group := range [][]string{s.Required, s.Preferred} {
		for _, skill := range group {
			if skill == "" || seen[skill] {
				continue
			}
			seen[skill] = true
			flat = append(flat, skill)
		}
	}
	return flat
}

// Education represents one degree entry. On a resume it is a degree held;
// on a job profile it is a qualification the posting asks for. An empty
// Field on a job entry means any field of study qualifies.
type Education struct {
	Degree string `json:"degree"`
	Field  string `json:"field,omitempty"`
}

// Profile is the structured view of either a resume or a job description.
// Profiles are immutable once constructed; the engine never mutates them.
// A nil Skills pointer means the skills list was never supplied (an
// ingestion defect), which is distinct from an empty skill set.
type Profile struct {
	ID              uuid.UUID   `json:"id"`
	Kind            ProfileKind `json:"kind" validate:"required,oneof=resume job"`
	Name            string      `json:"name,omitempty"`
	Skills          *SkillSet   `json:"skills"`
	Projects        []string    `json:"projects"`
	Education       []Education `json:"education"`
	Certifications  []string    `json:"certifications"`
	ExperienceYears *int        `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	RawText         string      `json:"raw_text,omitempty"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
