package api

import (
	"strconv"

	"github.com/abhisek/quizify/internal/analytics"
	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/session"
)

// sessionView is the JSON shape of a session's state.
type sessionView struct {
	ID        string                  `json:"id"`
	Stage     session.Stage           `json:"stage"`
	Loading   bool                    `json:"loading"`
	Error     string                  `json:"error,omitempty"`
	Reveal    session.RevealFlags     `json:"reveal"`
	Document  *knowledge.WireDocument `json:"document,omitempty"`
	Answers   map[string]string       `json:"answers"`
	Submitted bool                    `json:"submitted"`
	Score     *session.Score          `json:"score,omitempty"`
	Heatmap   []heatmapChip           `json:"heatmap,omitempty"`
	Summary   *session.Summary        `json:"summary,omitempty"`
}

type heatmapChip struct {
	analytics.ConceptChip
	Band analytics.Band `json:"band"`
}

func newSessionView(id string, st session.State) sessionView {
	v := sessionView{
		ID:        id,
		Stage:     st.Stage,
		Loading:   st.Loading,
		Error:     st.Err,
		Reveal:    st.Reveal,
		Answers:   make(map[string]string, len(st.Answers)),
		Submitted: st.Submitted,
		Score:     st.Score,
	}
	for ordinal, opt := range st.Answers {
		v.Answers[strconv.Itoa(ordinal)] = string(opt)
	}

	if st.Document != nil {
		wire := st.Document.ToWire()
		v.Document = &wire
		for _, chip := range analytics.Heatmap(st.Document) {
			v.Heatmap = append(v.Heatmap, heatmapChip{ConceptChip: chip, Band: chip.Band()})
		}
	}
	if st.Submitted {
		v.Summary = session.Summarize(st)
	}
	return v
}
