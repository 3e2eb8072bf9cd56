package analytics

import (
	"sort"

	"github.com/abhisek/quizify/internal/knowledge"
)

// MaxGaps is the number of concepts LearningGaps reports.
const MaxGaps = 5

// LearningGaps ranks the concepts related to wrongly answered questions.
//
// Each wrong question adds one to every name in its RelatedConcepts.
// Names are ordered by descending count; ties keep the order in which the
// names first appeared while walking wrongOrdinals. Names need not match a
// concept in the document.
func LearningGaps(doc *knowledge.Document, wrongOrdinals []int) []string {
	if doc == nil || len(wrongOrdinals) == 0 {
		return []string{}
	}

	type gap struct {
		name  string
		count int
	}
	byName := make(map[string]*gap)
	var order []*gap

	for _, ord := range wrongOrdinals {
		q, ok := doc.Question(ord)
		if !ok {
			continue
		}
		for _, name := range q.RelatedConcepts {
			g, ok := byName[name]
			if !ok {
				g = &gap{name: name}
				byName[name] = g
				order = append(order, g)
			}
			g.count++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	n := min(len(order), MaxGaps)
	out := make([]string, 0, n)
	for _, g := range order[:n] {
		out = append(out, g.name)
	}
	return out
}
