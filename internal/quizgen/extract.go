package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// MaxRawExcerpt caps the raw model output attached to an ExtractionError.
const MaxRawExcerpt = 2000

const fence = "```"

// Extract locates and parses the JSON object in raw model output.
//
// The text is trimmed, a surrounding markdown code fence (with optional
// language tag) is removed, and the span from the first '{' to the last
// '}' is decoded. Numbers are kept as json.Number.
func Extract(raw string) (map[string]any, error) {
	content := stripFence(strings.TrimSpace(raw))

	first := strings.IndexByte(content, '{')
	last := strings.LastIndexByte(content, '}')
	if first == -1 || last < first {
		return nil, &ExtractionError{
			Raw: truncateRunes(content, MaxRawExcerpt),
			Err: errors.New("no JSON object found"),
		}
	}
	content = content[first : last+1]

	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var v map[string]any
	if err := dec.Decode(&v); err != nil {
		return nil, &ExtractionError{Raw: truncateRunes(content, MaxRawExcerpt), Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ExtractionError{
			Raw: truncateRunes(content, MaxRawExcerpt),
			Err: fmt.Errorf("unexpected data after top-level object"),
		}
	}
	return v, nil
}

// stripFence removes an opening ``` line (with optional language tag) and
// a closing ``` at the end of s.
func stripFence(s string) string {
	if !strings.HasPrefix(s, fence) {
		return s
	}
	s = strings.TrimPrefix(s, fence)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return r < unicode.MaxASCII && unicode.IsLetter(r)
	})
	s = strings.TrimPrefix(s, "\n")

	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	if strings.HasSuffix(trimmed, fence) {
		s = strings.TrimSuffix(trimmed, fence)
	}
	return strings.TrimSpace(s)
}

// truncateRunes returns at most n characters of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
