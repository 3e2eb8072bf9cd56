package quizgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/store"
)

func photosynthesisDoc(t *testing.T) *knowledge.Document {
	t.Helper()
	v, err := Extract(photosynthesisJSON)
	require.NoError(t, err)
	doc, err := Normalize(v)
	require.NoError(t, err)
	return doc
}

func TestEncodeDecodeDocument(t *testing.T) {
	doc := photosynthesisDoc(t)

	b, err := EncodeDocument(doc)
	require.NoError(t, err)

	back, err := DecodeDocument(b)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestEncodeDocument_Nil(t *testing.T) {
	_, err := EncodeDocument(nil)
	assert.Error(t, err)
}

func TestSaveAndLoadDocument(t *testing.T) {
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	repo := s.DocumentRepo()
	doc := photosynthesisDoc(t)

	for range 3 {
		_, err := SaveDocument(ctx, repo, "leaf.md", LevelHard, doc, 2)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2, "history is trimmed to keep")

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "leaf.md", latest.Source)
	assert.Equal(t, "hard", latest.Difficulty)
	assert.Equal(t, len(doc.Concepts), latest.Concepts)
	assert.Equal(t, len(doc.Quiz), latest.Questions)

	loaded, err := LoadDocument(latest)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestLoadDocument_Corrupt(t *testing.T) {
	_, err := LoadDocument(&store.SavedDocument{ID: 4, Data: []byte("not json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saved document 4")

	_, err = LoadDocument(nil)
	assert.Error(t, err)
}

func TestStaticGenerator(t *testing.T) {
	doc := photosynthesisDoc(t)
	gen := StaticGenerator{Document: doc}

	got, err := gen.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.NotSame(t, doc, got, "callers get their own copy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = StaticGenerator{}.Generate(context.Background(), Request{})
	assert.Error(t, err)
}
