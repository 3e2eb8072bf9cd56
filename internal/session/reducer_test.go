package session

import (
	"errors"
	"testing"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *knowledge.Document {
	return &knowledge.Document{
		Concepts: []knowledge.Concept{
			{Name: "Chlorophyll", Importance: 5},
			{Name: "Calvin cycle", Importance: 3},
		},
		Quiz: []knowledge.Question{
			{Ordinal: 1, Text: "q1", CorrectOption: knowledge.OptionA, Difficulty: knowledge.DifficultyEasy, RelatedConcepts: []string{"Chlorophyll"}},
			{Ordinal: 2, Text: "q2", CorrectOption: knowledge.OptionB, Difficulty: knowledge.DifficultyHard, RelatedConcepts: []string{"Calvin cycle"}},
			{Ordinal: 3, Text: "q3", CorrectOption: knowledge.OptionC, Difficulty: knowledge.DifficultyHard, RelatedConcepts: []string{"Calvin cycle", "Chlorophyll"}},
		},
		SelfCheck: knowledge.SelfCheckPass,
	}
}

// apply runs events in order and fails on the first error.
func apply(t *testing.T, s State, events ...Event) State {
	t.Helper()
	for _, ev := range events {
		var err error
		s, err = Reduce(s, ev)
		require.NoError(t, err, "event %s", EventName(ev))
	}
	return s
}

func quizState(t *testing.T) State {
	return apply(t, NewState(),
		SubmitRequest{Request: quizgen.Request{Text: "x", Difficulty: quizgen.LevelEasy}},
		ExtractionSucceeded{Document: testDoc()},
		AdvanceRequested{},
		AdvanceRequested{},
	)
}

func assertRevealConsistent(t *testing.T, s State) {
	t.Helper()
	if s.Document == nil {
		return
	}
	if s.Reveal.Hierarchy {
		assert.True(t, s.Reveal.Concepts, "hierarchy revealed before concepts")
	}
	if s.Reveal.Quiz {
		assert.True(t, s.Reveal.Hierarchy, "quiz revealed before hierarchy")
	}
}

func TestReduce_HappyPath(t *testing.T) {
	s := NewState()

	s = apply(t, s, SubmitRequest{Request: quizgen.Request{Text: "x", Difficulty: quizgen.LevelMixed}})
	assert.True(t, s.Loading)
	assert.Equal(t, StageInput, s.Stage)

	s = apply(t, s, ExtractionSucceeded{Document: testDoc()})
	assert.False(t, s.Loading)
	assert.Equal(t, StageConcepts, s.Stage)
	assert.Equal(t, RevealFlags{Concepts: true}, s.Reveal)
	assertRevealConsistent(t, s)

	s = apply(t, s, AdvanceRequested{})
	assert.Equal(t, StageHierarchy, s.Stage)
	assert.Equal(t, RevealFlags{Concepts: true, Hierarchy: true}, s.Reveal)

	s = apply(t, s, AdvanceRequested{})
	assert.Equal(t, StageQuiz, s.Stage)
	assert.Equal(t, RevealFlags{Concepts: true, Hierarchy: true, Quiz: true}, s.Reveal)

	s = apply(t, s,
		SelectOption{Ordinal: 1, Option: knowledge.OptionA},
		SelectOption{Ordinal: 2, Option: knowledge.OptionD},
		SelectOption{Ordinal: 3, Option: knowledge.OptionC},
		SubmitQuiz{},
	)
	assert.Equal(t, StageResults, s.Stage)
	assert.True(t, s.Submitted)
	require.NotNil(t, s.Score)
	assert.Equal(t, Score{Correct: 2, Total: 3, WrongOrdinals: []int{2}}, *s.Score)

	s = apply(t, s, ReviewRequested{})
	assert.Equal(t, StageReview, s.Stage)
	s = apply(t, s, BackToResults{})
	assert.Equal(t, StageResults, s.Stage)
}

func TestReduce_AdvanceIsNoopElsewhere(t *testing.T) {
	s := quizState(t)
	next, err := Reduce(s, AdvanceRequested{})
	require.NoError(t, err)
	assert.Equal(t, StageQuiz, next.Stage)

	fresh, err := Reduce(NewState(), AdvanceRequested{})
	require.NoError(t, err)
	assert.Equal(t, NewState(), fresh)
}

func TestReduce_ChangeAnswerBeforeSubmit(t *testing.T) {
	s := apply(t, quizState(t),
		SelectOption{Ordinal: 1, Option: knowledge.OptionB},
		SelectOption{Ordinal: 1, Option: knowledge.OptionA},
	)
	assert.Equal(t, knowledge.OptionA, s.Answers[1])
}

func TestReduce_SelectAfterSubmitIsNoop(t *testing.T) {
	s := apply(t, quizState(t), SelectOption{Ordinal: 1, Option: knowledge.OptionA}, SubmitQuiz{})
	next, err := Reduce(s, SelectOption{Ordinal: 1, Option: knowledge.OptionD})
	require.NoError(t, err)
	assert.Equal(t, knowledge.OptionA, next.Answers[1])
}

func TestReduce_SelectRejectsUnknownOrdinalAndOption(t *testing.T) {
	s := quizState(t)

	_, err := Reduce(s, SelectOption{Ordinal: 9, Option: knowledge.OptionA})
	var te *TransitionError
	assert.True(t, errors.As(err, &te))

	_, err = Reduce(s, SelectOption{Ordinal: 1, Option: knowledge.Option("E")})
	assert.True(t, errors.As(err, &te))
}

func TestReduce_UnansweredSubmission(t *testing.T) {
	s := apply(t, quizState(t), SubmitQuiz{})
	require.NotNil(t, s.Score)
	assert.Equal(t, 0, s.Score.Correct)
	assert.Equal(t, 3, s.Score.Total)
	assert.Equal(t, []int{1, 2, 3}, s.Score.WrongOrdinals)
}

func TestReduce_ScoringIdentity(t *testing.T) {
	answers := [][]knowledge.Option{
		{},
		{knowledge.OptionA},
		{knowledge.OptionA, knowledge.OptionB, knowledge.OptionC},
		{knowledge.OptionD, knowledge.OptionD, knowledge.OptionD},
	}
	for _, set := range answers {
		s := quizState(t)
		for i, opt := range set {
			s = apply(t, s, SelectOption{Ordinal: i + 1, Option: opt})
		}
		s = apply(t, s, SubmitQuiz{})
		assert.Equal(t, len(s.Document.Quiz), s.Score.Total)
		assert.Equal(t, s.Score.Total, s.Score.Correct+len(s.Score.WrongOrdinals))
		assert.IsIncreasing(t, append([]int{0}, s.Score.WrongOrdinals...))
	}
}

func TestReduce_SubmitOnlyOnce(t *testing.T) {
	s := apply(t, quizState(t), SubmitQuiz{})
	next, err := Reduce(s, SubmitQuiz{})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, s, next)
}

func TestReduce_SubmitOutsideQuiz(t *testing.T) {
	_, err := Reduce(NewState(), SubmitQuiz{})
	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, StageInput, te.Stage)
}

func TestReduce_AttemptAgain(t *testing.T) {
	s := apply(t, quizState(t), SelectOption{Ordinal: 1, Option: knowledge.OptionA}, SubmitQuiz{})
	doc := s.Document
	reveal := s.Reveal

	s = apply(t, s, AttemptAgain{})
	assert.Equal(t, StageQuiz, s.Stage)
	assert.Empty(t, s.Answers)
	assert.False(t, s.Submitted)
	assert.Nil(t, s.Score)
	assert.Same(t, doc, s.Document)
	assert.Equal(t, reveal, s.Reveal)

	_, err := Reduce(s, AttemptAgain{})
	assert.Error(t, err, "attempt again requires a submitted quiz")
}

func TestReduce_AttemptAgainFromReview(t *testing.T) {
	s := apply(t, quizState(t), SubmitQuiz{}, ReviewRequested{}, AttemptAgain{})
	assert.Equal(t, StageQuiz, s.Stage)
}

func TestReduce_ExtractionFailure(t *testing.T) {
	s := apply(t, NewState(),
		SubmitRequest{Request: quizgen.Request{Text: "x", Difficulty: quizgen.LevelEasy}},
		ExtractionFailed{Err: errors.New("upstream exploded")},
	)
	assert.Equal(t, StageInput, s.Stage)
	assert.Nil(t, s.Document)
	assert.False(t, s.Loading)
	assert.Equal(t, "upstream exploded", s.Err)
	assert.Equal(t, RevealFlags{}, s.Reveal)
}

func TestReduce_FailureDiscardsPriorDocument(t *testing.T) {
	s := apply(t, quizState(t),
		SubmitRequest{Request: quizgen.Request{Text: "y", Difficulty: quizgen.LevelHard}},
	)
	assert.True(t, s.Loading)
	assert.Equal(t, StageQuiz, s.Stage, "prior view stays while loading")

	s = apply(t, s, ExtractionFailed{Err: errors.New("boom")})
	assert.Equal(t, StageInput, s.Stage)
	assert.Nil(t, s.Document)
}

func TestReduce_SubmitWhileLoading(t *testing.T) {
	s := apply(t, NewState(), SubmitRequest{})
	_, err := Reduce(s, SubmitRequest{})
	var te *TransitionError
	assert.True(t, errors.As(err, &te))
}

func TestReduce_CompletionWithoutLoading(t *testing.T) {
	_, err := Reduce(NewState(), ExtractionSucceeded{Document: testDoc()})
	assert.Error(t, err)
	_, err = Reduce(NewState(), ExtractionFailed{Err: errors.New("x")})
	assert.Error(t, err)
}

func TestReduce_ResetFromEveryStage(t *testing.T) {
	states := map[string]State{
		"input":   NewState(),
		"loading": apply(t, NewState(), SubmitRequest{}),
		"quiz":    quizState(t),
		"results": apply(t, quizState(t), SubmitQuiz{}),
		"review":  apply(t, quizState(t), SubmitQuiz{}, ReviewRequested{}),
		"failed":  apply(t, NewState(), SubmitRequest{}, ExtractionFailed{Err: errors.New("x")}),
	}
	for name, s := range states {
		t.Run(name, func(t *testing.T) {
			next, err := Reduce(s, Reset{})
			require.NoError(t, err)
			assert.Equal(t, NewState(), next)
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := quizState(t)
	_ = apply(t, s, SelectOption{Ordinal: 1, Option: knowledge.OptionA})
	assert.Empty(t, s.Answers)
}

func TestStageText(t *testing.T) {
	b, err := StageReview.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "review", string(b))

	var s Stage
	require.NoError(t, s.UnmarshalText([]byte("hierarchy")))
	assert.Equal(t, StageHierarchy, s)
	assert.Error(t, s.UnmarshalText([]byte("nope")))
}
