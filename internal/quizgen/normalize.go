package quizgen

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/abhisek/quizify/internal/knowledge"
)

// defaultImportance replaces a missing or non-numeric importance.
const defaultImportance = 1

// Normalize converts an extracted JSON value into a Document.
//
// Structural requirements are strict and reported as a *SchemaError naming
// the first offending field. Content is treated leniently: missing arrays
// default to empty, importance defaults to 1, and answers are kept as
// supplied even when they are not one of A-D.
func Normalize(v any) (*knowledge.Document, error) {
	root, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaError{Field: "$", Message: "expected object"}
	}

	doc := &knowledge.Document{
		Concepts:  []knowledge.Concept{},
		Hierarchy: []knowledge.Topic{},
		Quiz:      []knowledge.Question{},
		SelfCheck: knowledge.SelfCheckFail,
	}

	concepts, err := optionalArray(root, "concepts", "concepts")
	if err != nil {
		return nil, err
	}
	for i, item := range concepts {
		c, err := normalizeConcept(item, fmt.Sprintf("concepts[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Concepts = append(doc.Concepts, c)
	}

	topics, err := optionalArray(root, "topicHierarchy", "topicHierarchy")
	if err != nil {
		return nil, err
	}
	for i, item := range topics {
		t, err := normalizeTopic(item, fmt.Sprintf("topicHierarchy[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Hierarchy = append(doc.Hierarchy, t)
	}

	quiz, err := optionalArray(root, "quiz", "quiz")
	if err != nil {
		return nil, err
	}
	for i, item := range quiz {
		q, err := normalizeQuestion(item, fmt.Sprintf("quiz[%d]", i))
		if err != nil {
			return nil, err
		}
		q.Ordinal = i + 1
		doc.Quiz = append(doc.Quiz, q)
	}

	if s, ok := root["selfCheck"].(string); ok && s == string(knowledge.SelfCheckPass) {
		doc.SelfCheck = knowledge.SelfCheckPass
	}

	return doc, nil
}

func normalizeConcept(item any, path string) (knowledge.Concept, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return knowledge.Concept{}, &SchemaError{Field: path, Message: "expected object"}
	}
	name, err := requiredString(obj, "name", path)
	if err != nil {
		return knowledge.Concept{}, err
	}
	def, err := optionalString(obj, "definition", path)
	if err != nil {
		return knowledge.Concept{}, err
	}
	return knowledge.Concept{
		Name:       name,
		Definition: def,
		Importance: importance(obj["importance"]),
	}, nil
}

func normalizeTopic(item any, path string) (knowledge.Topic, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return knowledge.Topic{}, &SchemaError{Field: path, Message: "expected object"}
	}
	name, err := requiredString(obj, "topic", path)
	if err != nil {
		return knowledge.Topic{}, err
	}
	subs, err := optionalArray(obj, "subtopics", path+".subtopics")
	if err != nil {
		return knowledge.Topic{}, err
	}

	t := knowledge.Topic{Name: name, Subtopics: make([]knowledge.Subtopic, 0, len(subs))}
	for i, s := range subs {
		subPath := fmt.Sprintf("%s.subtopics[%d]", path, i)
		sobj, ok := s.(map[string]any)
		if !ok {
			return knowledge.Topic{}, &SchemaError{Field: subPath, Message: "expected object"}
		}
		sname, err := requiredString(sobj, "subtopic", subPath)
		if err != nil {
			return knowledge.Topic{}, err
		}
		names, err := optionalStrings(sobj, "concepts", subPath+".concepts")
		if err != nil {
			return knowledge.Topic{}, err
		}
		t.Subtopics = append(t.Subtopics, knowledge.Subtopic{Name: sname, ConceptNames: names})
	}
	return t, nil
}

func normalizeQuestion(item any, path string) (knowledge.Question, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return knowledge.Question{}, &SchemaError{Field: path, Message: "expected object"}
	}
	text, err := requiredString(obj, "question", path)
	if err != nil {
		return knowledge.Question{}, err
	}

	optPath := path + ".options"
	rawOpts, ok := obj["options"].([]any)
	if !ok {
		return knowledge.Question{}, &SchemaError{Field: optPath, Message: "expected array of 4 strings"}
	}
	if len(rawOpts) != len(knowledge.AllOptions) {
		return knowledge.Question{}, &SchemaError{
			Field:   optPath,
			Message: fmt.Sprintf("expected 4 options, got %d", len(rawOpts)),
		}
	}
	var opts knowledge.Options
	for i, o := range rawOpts {
		s, ok := o.(string)
		if !ok {
			return knowledge.Question{}, &SchemaError{Field: fmt.Sprintf("%s[%d]", optPath, i), Message: "expected string"}
		}
		opts[i] = s
	}

	answer, err := requiredString(obj, "answer", path)
	if err != nil {
		return knowledge.Question{}, err
	}
	diff, err := optionalString(obj, "difficulty", path)
	if err != nil {
		return knowledge.Question{}, err
	}
	related, err := optionalStrings(obj, "relatedConcepts", path+".relatedConcepts")
	if err != nil {
		return knowledge.Question{}, err
	}

	return knowledge.Question{
		Text:            text,
		Options:         opts,
		CorrectOption:   knowledge.Option(answer),
		Difficulty:      knowledge.QuestionDifficulty(diff),
		RelatedConcepts: related,
	}, nil
}

func requiredString(obj map[string]any, key, path string) (string, error) {
	v, present := obj[key]
	if !present || v == nil {
		return "", &SchemaError{Field: path + "." + key, Message: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Field: path + "." + key, Message: "expected string"}
	}
	return s, nil
}

func optionalString(obj map[string]any, key, path string) (string, error) {
	v, present := obj[key]
	if !present || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Field: path + "." + key, Message: "expected string"}
	}
	return s, nil
}

// optionalArray returns obj[key] as a slice. A missing or null value
// yields an empty slice.
func optionalArray(obj map[string]any, key, path string) ([]any, error) {
	v, present := obj[key]
	if !present || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &SchemaError{Field: path, Message: "expected array"}
	}
	return arr, nil
}

func optionalStrings(obj map[string]any, key, path string) ([]string, error) {
	arr, err := optionalArray(obj, key, path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(arr))
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, &SchemaError{Field: fmt.Sprintf("%s[%d]", path, i), Message: "expected string"}
		}
		out = append(out, s)
	}
	return out, nil
}

// importance coerces a decoded number to an int. Anything else yields
// defaultImportance.
func importance(v any) int {
	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		parsed, err := n.Float64()
		if err != nil {
			return defaultImportance
		}
		f = parsed
	case float64:
		f = n
	case int:
		return n
	default:
		return defaultImportance
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return defaultImportance
	}
	return int(math.Round(f))
}
