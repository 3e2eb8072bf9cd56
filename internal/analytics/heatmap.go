package analytics

import "github.com/abhisek/quizify/internal/knowledge"

// MaxImportance is the top of the importance scale.
const MaxImportance = 5

// ConceptChip is the per-concept aggregate shown on the heatmap.
// It is derived on demand and never stored.
type ConceptChip struct {
	Name                 string  `json:"name"`
	Importance           int     `json:"importance"`
	NormalizedImportance float64 `json:"normalizedImportance"`
	DifficultyDensity    int     `json:"difficultyDensity"`
	TotalReferences      int     `json:"totalReferences"`
	ReferencedBy         []int   `json:"referencedBy"`
}

// Band returns the heat band for the chip's difficulty density.
func (c ConceptChip) Band() Band {
	return BandFor(c.DifficultyDensity)
}

// Band buckets difficulty density for display.
type Band string

const (
	BandCool Band = "cool" // no hard questions
	BandWarm Band = "warm" // exactly one
	BandHot  Band = "hot"  // two or more
)

// BandFor maps a difficulty density to its band.
func BandFor(density int) Band {
	switch {
	case density < 1:
		return BandCool
	case density < 2:
		return BandWarm
	default:
		return BandHot
	}
}

// Heatmap returns one chip per distinct concept name, in order of first
// appearance. Every listed related name that resolves to a concept counts
// as one reference, so a question naming a concept twice counts twice.
// ReferencedBy holds each question ordinal once.
func Heatmap(doc *knowledge.Document) []ConceptChip {
	if doc == nil {
		return []ConceptChip{}
	}

	chips := make([]ConceptChip, 0, len(doc.Concepts))
	slot := make(map[string]int, len(doc.Concepts))
	for _, c := range doc.Concepts {
		if _, dup := slot[c.Name]; dup {
			continue
		}
		slot[c.Name] = len(chips)
		chips = append(chips, ConceptChip{
			Name:                 c.Name,
			Importance:           c.Importance,
			NormalizedImportance: normalizeImportance(c.Importance),
			ReferencedBy:         []int{},
		})
	}

	for _, q := range doc.Quiz {
		for _, name := range q.RelatedConcepts {
			i, ok := slot[name]
			if !ok {
				continue
			}
			chip := &chips[i]
			chip.TotalReferences++
			if q.Difficulty == knowledge.DifficultyHard {
				chip.DifficultyDensity++
			}
			if n := len(chip.ReferencedBy); n == 0 || chip.ReferencedBy[n-1] != q.Ordinal {
				chip.ReferencedBy = append(chip.ReferencedBy, q.Ordinal)
			}
		}
	}
	return chips
}

// normalizeImportance maps importance onto [0, 1]. Out-of-scale values are
// clamped here only; Importance keeps what the model sent.
func normalizeImportance(importance int) float64 {
	return float64(min(max(importance, 0), MaxImportance)) / MaxImportance
}
