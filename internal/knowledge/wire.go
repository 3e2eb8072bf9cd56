package knowledge

// The wire types mirror the JSON shape the generation service is asked to
// produce. They are used to re-encode a normalized Document for HTTP
// clients that expect the original contract.

// WireDocument is the pre-normalization JSON shape.
type WireDocument struct {
	Concepts       []WireConcept  `json:"concepts"`
	TopicHierarchy []WireTopic    `json:"topicHierarchy"`
	Quiz           []WireQuestion `json:"quiz"`
	SelfCheck      string         `json:"selfCheck"`
}

type WireConcept struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Importance int    `json:"importance"`
}

type WireTopic struct {
	Topic     string         `json:"topic"`
	Subtopics []WireSubtopic `json:"subtopics"`
}

type WireSubtopic struct {
	Subtopic string   `json:"subtopic"`
	Concepts []string `json:"concepts"`
}

type WireQuestion struct {
	Question        string    `json:"question"`
	Options         [4]string `json:"options"`
	Answer          string    `json:"answer"`
	Difficulty      string    `json:"difficulty"`
	RelatedConcepts []string  `json:"relatedConcepts"`
}

// ToWire converts a Document back to the contract shape.
func (d *Document) ToWire() WireDocument {
	w := WireDocument{
		Concepts:       make([]WireConcept, 0, len(d.Concepts)),
		TopicHierarchy: make([]WireTopic, 0, len(d.Hierarchy)),
		Quiz:           make([]WireQuestion, 0, len(d.Quiz)),
		SelfCheck:      string(d.SelfCheck),
	}
	for _, c := range d.Concepts {
		w.Concepts = append(w.Concepts, WireConcept{Name: c.Name, Definition: c.Definition, Importance: c.Importance})
	}
	for _, t := range d.Hierarchy {
		wt := WireTopic{Topic: t.Name, Subtopics: make([]WireSubtopic, 0, len(t.Subtopics))}
		for _, s := range t.Subtopics {
			names := s.ConceptNames
			if names == nil {
				names = []string{}
			}
			wt.Subtopics = append(wt.Subtopics, WireSubtopic{Subtopic: s.Name, Concepts: names})
		}
		w.TopicHierarchy = append(w.TopicHierarchy, wt)
	}
	for _, q := range d.Quiz {
		rc := q.RelatedConcepts
		if rc == nil {
			rc = []string{}
		}
		w.Quiz = append(w.Quiz, WireQuestion{
			Question:        q.Text,
			Options:         q.Options,
			Answer:          string(q.CorrectOption),
			Difficulty:      string(q.Difficulty),
			RelatedConcepts: rc,
		})
	}
	return w
}
