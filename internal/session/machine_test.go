package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/quizify/internal/analytics"
	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/llm"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingGenerator waits for release before returning doc.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	doc     *knowledge.Document
	err     error
}

func (g *blockingGenerator) Generate(ctx context.Context, _ quizgen.Request) (*knowledge.Document, error) {
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.doc, g.err
}

func newBlocking(doc *knowledge.Document, err error) *blockingGenerator {
	return &blockingGenerator{started: make(chan struct{}), release: make(chan struct{}), doc: doc, err: err}
}

var easyReq = quizgen.Request{Text: "Photosynthesis converts light to energy.", Difficulty: quizgen.LevelEasy}

func TestMachine_EndToEndPhotosynthesis(t *testing.T) {
	raw := `{
	  "concepts": [{"name": "Photosynthesis", "definition": "Light to chemical energy", "importance": 5}],
	  "topicHierarchy": [{"topic": "Biology", "subtopics": [{"subtopic": "Plants", "concepts": ["Photosynthesis"]}]}],
	  "quiz": [{"question": "What does photosynthesis produce?", "options": ["Light", "Glucose", "Soil", "Rock"], "answer": "B", "difficulty": "hard", "relatedConcepts": ["Photosynthesis"]}],
	  "selfCheck": "pass"
	}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(raw)})
	gen := quizgen.New(mock, quizgen.DefaultConfig())

	m := NewMachine()
	require.NoError(t, m.Extract(context.Background(), gen, easyReq))

	s := m.Snapshot()
	require.Equal(t, StageConcepts, s.Stage)
	assert.Equal(t, knowledge.OptionB, s.Document.Quiz[0].CorrectOption)

	chips := analytics.Heatmap(s.Document)
	require.Len(t, chips, 1)
	assert.Equal(t, "Photosynthesis", chips[0].Name)
	assert.InDelta(t, 1.0, chips[0].NormalizedImportance, 1e-9)
	assert.Equal(t, 1, chips[0].DifficultyDensity)

	require.NoError(t, m.Dispatch(AdvanceRequested{}))
	require.NoError(t, m.Dispatch(AdvanceRequested{}))
	require.NoError(t, m.Dispatch(SelectOption{Ordinal: 1, Option: knowledge.OptionA}))
	require.NoError(t, m.Dispatch(SubmitQuiz{}))

	s = m.Snapshot()
	require.NotNil(t, s.Score)
	assert.Equal(t, Score{Correct: 0, Total: 1, WrongOrdinals: []int{1}}, *s.Score)

	sum := Summarize(s)
	require.NotNil(t, sum)
	assert.Equal(t, []string{"Photosynthesis"}, sum.Gaps)
	assert.Equal(t, VerdictKeepLearning, sum.Verdict)
}

func TestMachine_FailureReturnsToInput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("Sorry, I cannot help.")})
	gen := quizgen.New(mock, quizgen.DefaultConfig())

	m := NewMachine()
	err := m.Extract(context.Background(), gen, easyReq)
	require.True(t, quizgen.IsExtraction(err))

	s := m.Snapshot()
	assert.Equal(t, StageInput, s.Stage)
	assert.Nil(t, s.Document)
	assert.False(t, s.Loading)
	assert.NotEmpty(t, s.Err)
}

func TestMachine_BusyWhileLoading(t *testing.T) {
	m := NewMachine()
	gen := newBlocking(testDoc(), nil)

	done := make(chan error, 1)
	go func() { done <- m.Extract(context.Background(), gen, easyReq) }()
	<-gen.started

	assert.True(t, m.Snapshot().Loading, "snapshots stay readable while loading")
	assert.ErrorIs(t, m.Extract(context.Background(), gen, easyReq), ErrBusy)

	close(gen.release)
	require.NoError(t, <-done)
	assert.Equal(t, StageConcepts, m.Snapshot().Stage)
}

func TestMachine_ResetDropsInflightResult(t *testing.T) {
	m := NewMachine()
	gen := newBlocking(testDoc(), nil)

	done := make(chan error, 1)
	go func() { done <- m.Extract(context.Background(), gen, easyReq) }()
	<-gen.started

	require.NoError(t, m.Dispatch(Reset{}))
	close(gen.release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, NewState(), m.Snapshot())
}

func TestMachine_StaleTicketAfterNewSubmit(t *testing.T) {
	m := NewMachine()
	old, err := m.Begin(easyReq)
	require.NoError(t, err)
	require.NoError(t, m.Dispatch(Reset{}))

	fresh, err := m.Begin(easyReq)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Complete(old, testDoc(), nil), ErrStale)
	assert.True(t, m.Snapshot().Loading)

	require.NoError(t, m.Complete(fresh, nil, errors.New("boom")))
	assert.Equal(t, "boom", m.Snapshot().Err)
}

func TestMachine_CompleteWithoutDocument(t *testing.T) {
	m := NewMachine()
	tk, err := m.Begin(easyReq)
	require.NoError(t, err)
	require.NoError(t, m.Complete(tk, nil, nil))

	s := m.Snapshot()
	assert.False(t, s.Loading)
	assert.Equal(t, StageInput, s.Stage)
	assert.NotEmpty(t, s.Err)
}

func TestMachine_SnapshotIsIsolated(t *testing.T) {
	m := NewMachine()
	tk, _ := m.Begin(easyReq)
	require.NoError(t, m.Complete(tk, testDoc(), nil))

	s := m.Snapshot()
	s.Document.Quiz[0].Text = "mutated"
	s.Answers[1] = knowledge.OptionA

	again := m.Snapshot()
	assert.Equal(t, "q1", again.Document.Quiz[0].Text)
	assert.Empty(t, again.Answers)
}

func TestMachine_ConcurrentDispatch(t *testing.T) {
	m := NewMachine()
	tk, _ := m.Begin(easyReq)
	require.NoError(t, m.Complete(tk, testDoc(), nil))
	require.NoError(t, m.Dispatch(AdvanceRequested{}))
	require.NoError(t, m.Dispatch(AdvanceRequested{}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opt := knowledge.AllOptions[i%4]
			_ = m.Dispatch(SelectOption{Ordinal: i%3 + 1, Option: opt})
			_ = m.Snapshot()
		}(i)
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Len(t, s.Answers, 3)
}
