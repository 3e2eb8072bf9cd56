package session

import (
	"math"

	"github.com/abhisek/quizify/internal/analytics"
)

// Verdict grades a submitted quiz.
type Verdict string

const (
	VerdictPerfect      Verdict = "perfect"
	VerdictPassed       Verdict = "passed"
	VerdictGoodEffort   Verdict = "good-effort"
	VerdictKeepLearning Verdict = "keep-learning"
)

// Message returns the text shown with the verdict.
func (v Verdict) Message() string {
	switch v {
	case VerdictPerfect:
		return "Perfect score! Outstanding work!"
	case VerdictPassed:
		return "Great job! You passed!"
	case VerdictGoodEffort:
		return "Good effort. Review the concepts and try again!"
	default:
		return "Keep learning! Try reviewing the material and attempt again!"
	}
}

// Summary holds the data displayed on the results view.
type Summary struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Percent int      `json:"percent"`
	Verdict Verdict  `json:"verdict"`
	Message string   `json:"message"`
	Gaps    []string `json:"learningGaps"`
}

// Summarize builds the results view for a submitted quiz. It returns nil
// until the quiz has been scored.
func Summarize(s State) *Summary {
	if s.Score == nil || s.Document == nil {
		return nil
	}
	sc := s.Score

	var percent int
	if sc.Total > 0 {
		percent = int(math.Round(float64(sc.Correct) / float64(sc.Total) * 100))
	}
	v := verdictFor(sc.Correct, sc.Total)

	return &Summary{
		Correct: sc.Correct,
		Total:   sc.Total,
		Percent: percent,
		Verdict: v,
		Message: v.Message(),
		Gaps:    analytics.LearningGaps(s.Document, sc.WrongOrdinals),
	}
}

func verdictFor(correct, total int) Verdict {
	switch {
	case correct == total:
		return VerdictPerfect
	case float64(correct) >= float64(total)*0.8:
		return VerdictPassed
	case float64(correct) >= float64(total)*0.6:
		return VerdictGoodEffort
	default:
		return VerdictKeepLearning
	}
}
