package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		correct, total int
		want           Verdict
	}{
		{10, 10, VerdictPerfect},
		{8, 10, VerdictPassed},
		{9, 10, VerdictPassed},
		{6, 10, VerdictGoodEffort},
		{7, 10, VerdictGoodEffort},
		{5, 10, VerdictKeepLearning},
		{0, 3, VerdictKeepLearning},
		{0, 0, VerdictPerfect},
	}
	for _, tt := range tests {
		if got := verdictFor(tt.correct, tt.total); got != tt.want {
			t.Errorf("verdictFor(%d, %d) = %q, want %q", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestVerdictMessage(t *testing.T) {
	assert.Equal(t, "Perfect score! Outstanding work!", VerdictPerfect.Message())
	assert.Equal(t, "Great job! You passed!", VerdictPassed.Message())
	assert.Equal(t, "Good effort. Review the concepts and try again!", VerdictGoodEffort.Message())
	assert.Equal(t, "Keep learning! Try reviewing the material and attempt again!", VerdictKeepLearning.Message())
}

func TestSummarize(t *testing.T) {
	s := NewState()
	if Summarize(s) != nil {
		t.Fatal("expected nil summary before submission")
	}

	s.Document = testDoc()
	s.Score = &Score{Correct: 2, Total: 3, WrongOrdinals: []int{3}}

	sum := Summarize(s)
	assert.Equal(t, 67, sum.Percent)
	assert.Equal(t, VerdictGoodEffort, sum.Verdict)
	assert.Equal(t, []string{"Calvin cycle", "Chlorophyll"}, sum.Gaps)
}

func TestSummarize_EmptyQuiz(t *testing.T) {
	s := NewState()
	s.Document = testDoc()
	s.Document.Quiz = nil
	s.Score = &Score{WrongOrdinals: []int{}}

	sum := Summarize(s)
	assert.Equal(t, 0, sum.Percent)
	assert.Empty(t, sum.Gaps)
}
