package quizgen

import (
	"maps"
	"slices"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/llm"
)

type props = map[string]any

// object builds a closed JSON Schema object in which every property is
// required.
func object(properties props) map[string]any {
	var required []any
	for _, name := range slices.Sorted(maps.Keys(properties)) {
		required = append(required, name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func arrayOf(items map[string]any, desc string) map[string]any {
	a := map[string]any{"type": "array", "items": items}
	if desc != "" {
		a["description"] = desc
	}
	return a
}

func text() map[string]any { return map[string]any{"type": "string"} }

func oneOf(values ...any) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

// DocumentSchema mirrors the reply shape described in the extraction
// prompt. It is only sent when Config.Structured is set.
var DocumentSchema = &llm.Schema{
	Name:        "knowledge-document",
	Description: "Concepts, topic hierarchy and multiple-choice quiz extracted from educational text",
	Definition: object(props{
		"concepts": arrayOf(object(props{
			"name":       text(),
			"definition": text(),
			"importance": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "1 (peripheral) to 5 (central)",
			},
		}), ""),
		"topicHierarchy": arrayOf(object(props{
			"topic": text(),
			"subtopics": arrayOf(object(props{
				"subtopic": text(),
				"concepts": arrayOf(text(), "Names of concepts covered by this subtopic"),
			}), ""),
		}), ""),
		"quiz": arrayOf(object(props{
			"question": text(),
			"options": map[string]any{
				"type":        "array",
				"items":       text(),
				"minItems":    len(knowledge.Options{}),
				"maxItems":    len(knowledge.Options{}),
				"description": "Option texts for A, B, C and D in order",
			},
			"answer":          oneOf("A", "B", "C", "D"),
			"difficulty":      oneOf("easy", "medium", "hard"),
			"relatedConcepts": arrayOf(text(), "Names of concepts this question tests"),
		}), ""),
		"selfCheck": oneOf("pass", "fail"),
	}),
}
