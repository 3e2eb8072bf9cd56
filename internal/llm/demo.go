package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

const (
	demoMaxConcepts = 6
	demoMinWords    = 4
)

var demoFillers = []string{
	"None of the above",
	"It is not covered by the text",
	"All of the above",
}

// NewDemoProvider returns a MockProvider that answers every request with a
// small quiz built from the sentences of the last user message. It needs no
// network and is selected with QUIZIFY_LLM_PROVIDER=mock.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	m.Fallback = demoReply
	return m
}

type demoConcept struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Importance int    `json:"importance"`
}

type demoSubtopic struct {
	Subtopic string   `json:"subtopic"`
	Concepts []string `json:"concepts"`
}

type demoTopic struct {
	Topic     string         `json:"topic"`
	Subtopics []demoSubtopic `json:"subtopics"`
}

type demoQuestion struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	Answer          string   `json:"answer"`
	Difficulty      string   `json:"difficulty"`
	RelatedConcepts []string `json:"relatedConcepts"`
}

type demoDocument struct {
	Concepts       []demoConcept  `json:"concepts"`
	TopicHierarchy []demoTopic    `json:"topicHierarchy"`
	Quiz           []demoQuestion `json:"quiz"`
	SelfCheck      string         `json:"selfCheck"`
}

func demoReply(req Request) (*Response, error) {
	var prompt string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			prompt = req.Messages[i].Content
			break
		}
	}
	text, level := splitDemoPrompt(prompt)

	concepts := demoConcepts(text)
	if len(concepts) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no sentences with at least %d words", demoMinWords)}
	}

	doc := demoDocument{SelfCheck: "pass"}
	names := make([]string, len(concepts))
	for i, c := range concepts {
		names[i] = c.Name
	}
	doc.Concepts = concepts
	doc.TopicHierarchy = []demoTopic{{
		Topic:     "Overview",
		Subtopics: []demoSubtopic{{Subtopic: "Key ideas", Concepts: names}},
	}}

	for i, c := range concepts {
		options := make([]string, 0, 4)
		for j := 1; len(options) < 3 && j < len(concepts); j++ {
			options = append(options, concepts[(i+j)%len(concepts)].Definition)
		}
		for _, f := range demoFillers {
			if len(options) == 3 {
				break
			}
			options = append(options, f)
		}
		// Rotate the correct slot so answers are spread over A-D.
		slot := i % 4
		options = append(options[:slot], append([]string{c.Definition}, options[slot:]...)...)

		doc.Quiz = append(doc.Quiz, demoQuestion{
			Question:        fmt.Sprintf("Which statement describes %s?", c.Name),
			Options:         options,
			Answer:          string(rune('A' + slot)),
			Difficulty:      demoDifficulty(level, i),
			RelatedConcepts: []string{c.Name},
		})
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Model:      "mock",
		StopReason: StopEnd,
		Usage: Usage{
			InputTokens:  len(prompt) / 4,
			OutputTokens: len(content) / 4,
		},
	}, nil
}

// splitDemoPrompt pulls the educational text and difficulty out of a
// compiled extraction prompt. Anything else is used whole.
func splitDemoPrompt(prompt string) (text, level string) {
	text = prompt
	if _, after, ok := strings.Cut(prompt, "EDUCATIONAL_TEXT: "); ok {
		text = after
	}
	if before, after, ok := strings.Cut(text, "\nDIFFICULTY: "); ok {
		text, level = before, strings.TrimSpace(after)
	}
	return text, level
}

func demoConcepts(text string) []demoConcept {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})

	var out []demoConcept
	seen := make(map[string]bool)
	for _, s := range sentences {
		words := strings.Fields(s)
		if len(words) < demoMinWords {
			continue
		}
		name := strings.TrimFunc(words[0], func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, demoConcept{
			Name:       name,
			Definition: strings.Join(words, " "),
			Importance: max(5-len(out), 1),
		})
		if len(out) == demoMaxConcepts {
			break
		}
	}
	return out
}

func demoDifficulty(level string, i int) string {
	switch level {
	case "easy", "medium", "hard":
		return level
	}
	return []string{"easy", "medium", "hard"}[i%3]
}
