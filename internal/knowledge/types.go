package knowledge

// Option identifies one of the four multiple-choice slots.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// AllOptions lists the option labels in display order.
var AllOptions = [4]Option{OptionA, OptionB, OptionC, OptionD}

// Valid reports whether o is one of A-D.
func (o Option) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Index returns the 0-based slot for o, or -1 if o is not a valid label.
func (o Option) Index() int {
	for i, opt := range AllOptions {
		if opt == o {
			return i
		}
	}
	return -1
}

// Options holds the four option texts indexed A..D.
type Options [4]string

// Text returns the text for the given label, or "" if the label is invalid.
func (o Options) Text(opt Option) string {
	i := opt.Index()
	if i < 0 {
		return ""
	}
	return o[i]
}

// QuestionDifficulty is the per-question difficulty tag.
type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// SelfCheck is the model's own verdict on its output.
type SelfCheck string

const (
	SelfCheckPass SelfCheck = "pass"
	SelfCheckFail SelfCheck = "fail"
)

// Concept is a named idea extracted from the source text.
type Concept struct {
	Name       string
	Definition string
	Importance int // 1..5 as supplied by the model
}

// Subtopic groups concepts by name. Names are soft references and may
// not resolve to a Concept.
type Subtopic struct {
	Name         string
	ConceptNames []string
}

// Topic is a top-level node of the hierarchy.
type Topic struct {
	Name      string
	Subtopics []Subtopic
}

// Question is one multiple-choice item.
type Question struct {
	Ordinal         int // 1-based position in the quiz
	Text            string
	Options         Options
	CorrectOption   Option
	Difficulty      QuestionDifficulty
	RelatedConcepts []string
}

// Document is the validated extraction result. It is never mutated after
// construction; a new extraction replaces it wholesale.
type Document struct {
	Concepts  []Concept
	Hierarchy []Topic
	Quiz      []Question
	SelfCheck SelfCheck
}

// ConceptIndex returns a lookup of concepts by name. Missing names simply
// miss the map.
func (d *Document) ConceptIndex() map[string]Concept {
	if d == nil {
		return map[string]Concept{}
	}
	idx := make(map[string]Concept, len(d.Concepts))
	for _, c := range d.Concepts {
		if _, ok := idx[c.Name]; !ok {
			idx[c.Name] = c
		}
	}
	return idx
}

// Question returns the question with the given ordinal.
func (d *Document) Question(ordinal int) (Question, bool) {
	if ordinal < 1 || ordinal > len(d.Quiz) {
		return Question{}, false
	}
	return d.Quiz[ordinal-1], true
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Concepts:  append([]Concept(nil), d.Concepts...),
		Hierarchy: make([]Topic, len(d.Hierarchy)),
		Quiz:      make([]Question, len(d.Quiz)),
		SelfCheck: d.SelfCheck,
	}
	for i, t := range d.Hierarchy {
		subs := make([]Subtopic, len(t.Subtopics))
		for j, s := range t.Subtopics {
			subs[j] = Subtopic{Name: s.Name, ConceptNames: append([]string(nil), s.ConceptNames...)}
		}
		out.Hierarchy[i] = Topic{Name: t.Name, Subtopics: subs}
	}
	for i, q := range d.Quiz {
		q.RelatedConcepts = append([]string(nil), q.RelatedConcepts...)
		out.Quiz[i] = q
	}
	return out
}
