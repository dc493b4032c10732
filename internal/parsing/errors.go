package parsing

import "fmt"

// APICallError means the model call itself failed; the heuristic
// extractor is the usual fallback.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	return withCause("API call failed: "+e.Message, e.Cause)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError means the model answered but the payload did not decode
// into a profile.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	return withCause("parse error: "+e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError means the decoded profile failed post-processing
// checks. Field names the offending profile field when known.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func withCause(msg string, cause error) string {
	if cause != nil {
		return fmt.Sprintf("%s: %v", msg, cause)
	}
	return msg
}
