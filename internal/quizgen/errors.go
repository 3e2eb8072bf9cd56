package quizgen

import (
	"errors"
	"fmt"
)

// ErrNoProvider is returned when no generation service is configured.
var ErrNoProvider = errors.New("missing generation service credential")

// ValidationError describes a malformed extraction request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UpstreamError wraps a failure reported by the generation service.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Details returns the upstream error text verbatim.
func (e *UpstreamError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// ExtractionError is returned when the model output holds no parsable
// JSON object. Raw is truncated to MaxRawExcerpt characters.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model output was not valid JSON: %v", e.Err)
	}
	return "model output was not valid JSON"
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SchemaError names the first field that is missing or has the wrong type.
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch at %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUpstream reports whether err is an *UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsExtraction reports whether err is an *ExtractionError.
func IsExtraction(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

// IsSchema reports whether err is a *SchemaError.
func IsSchema(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
