package scoring

import (
	"fmt"

	"github.com/google/uuid"
)

// InvalidConfigurationError indicates the weight configuration failed
// validation. It is fatal at startup and never produced per evaluation.
type InvalidConfigurationError struct {
	Message string
	Cause   error
}

func (e *InvalidConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid configuration: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *InvalidConfigurationError) Unwrap() error {
	return e.Cause
}

// IncompatibleEmbeddingError indicates two embedding vectors cannot be
// compared, either because their dimensions differ or because one is
// empty. This points at a model-version mismatch upstream and is not
// retried.
type IncompatibleEmbeddingError struct {
	DimA int
	DimB int
}

func (e *IncompatibleEmbeddingError) Error() string {
	return fmt.Sprintf("incompatible embedding vectors: dimensions %d and %d", e.DimA, e.DimB)
}

// IncompleteProfileError indicates a profile is missing a field scoring
// cannot proceed without. A nil skills list is incomplete; an empty one is
// not.
type IncompleteProfileError struct {
	ProfileID uuid.UUID
	Field     string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("incomplete profile %s: missing %s", e.ProfileID, e.Field)
}

// DegradedEvaluationWarning is the non-fatal marker produced when semantic
// matching could not be performed for a resume but hard matching could.
// The evaluation still completes with its degraded flag set.
type DegradedEvaluationWarning struct {
	ResumeID uuid.UUID
	Reason   string
}

func (e *DegradedEvaluationWarning) Error() string {
	return fmt.Sprintf("degraded evaluation for resume %s: %s", e.ResumeID, e.Reason)
}
