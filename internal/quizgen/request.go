package quizgen

import (
	"fmt"
	"strings"
)

// DefaultMaxTextBytes bounds the size of the educational text.
const DefaultMaxTextBytes = 60000

// ValidateRequest checks req before any generation call is made and
// returns it with Difficulty in canonical form.
// maxBytes <= 0 disables the size limit.
func ValidateRequest(req Request, maxBytes int) (Request, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req, &ValidationError{Field: "text", Message: "must not be empty"}
	}
	if maxBytes > 0 && len(req.Text) > maxBytes {
		return req, &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("exceeds %d bytes", maxBytes),
		}
	}
	if req.Difficulty == "" {
		return req, &ValidationError{Field: "difficulty", Message: "is required"}
	}
	level, ok := ParseLevel(string(req.Difficulty))
	if !ok {
		return req, &ValidationError{
			Field:   "difficulty",
			Message: fmt.Sprintf("%q is not one of easy, medium, hard or mixed", req.Difficulty),
		}
	}
	req.Difficulty = level
	return req, nil
}
