package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema defines the JSON structure expected from the model. A Schema
// must not be copied after first use.
type Schema struct {
	// Name identifies the schema. OpenAI-compatible endpoints use it as the
	// json_schema name. Kebab-case, e.g. "knowledge-document".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Validate checks raw against the schema. A nil Schema accepts anything.
// Failures are returned as *ErrInvalidResponse carrying raw.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := s.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("does not match %s: %w", s.Name, err)}
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// The compiler wants decoded JSON, not Go maps holding typed slices.
		b, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("marshal schema %s: %w", s.Name, err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			s.err = fmt.Errorf("decode schema %s: %w", s.Name, err)
			return
		}

		url := "mem://schemas/" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, def); err != nil {
			s.err = fmt.Errorf("add schema %s: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(url)
		if s.err != nil {
			s.err = fmt.Errorf("compile schema %s: %w", s.Name, s.err)
		}
	})
	return s.compiled, s.err
}
