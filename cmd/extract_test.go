package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/abhisek/quizify/internal/store"
)

func savedStore(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "quizify.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	doc := &knowledge.Document{
		Concepts: []knowledge.Concept{{Name: "Osmosis", Definition: "Water crossing a membrane", Importance: 4}},
		Quiz: []knowledge.Question{{
			Ordinal:         1,
			Text:            "What crosses the membrane in osmosis?",
			Options:         knowledge.Options{"Water", "Salt", "Sugar", "Light"},
			CorrectOption:   knowledge.OptionA,
			Difficulty:      knowledge.DifficultyHard,
			RelatedConcepts: []string{"Osmosis"},
		}},
		SelfCheck: knowledge.SelfCheckPass,
	}
	_, err = quizgen.SaveDocument(context.Background(), st.DocumentRepo(), "cells.md", quizgen.LevelHard, doc, 0)
	require.NoError(t, err)
	return dbPath
}

func TestExtractLast(t *testing.T) {
	dbPath := savedStore(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"extract", "--last", "--db", dbPath})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	var got extractOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "cells.md", got.Source)
	require.Len(t, got.Document.Quiz, 1)
	assert.Equal(t, "A", got.Document.Quiz[0].Answer)
	require.Len(t, got.Heatmap, 1)
	assert.Equal(t, 1, got.Heatmap[0].DifficultyDensity)
	assert.Equal(t, []int{1}, got.Heatmap[0].ReferencedBy)
}

func TestExtractRequiresInput(t *testing.T) {
	rootCmd.SetArgs([]string{"extract", "--db", filepath.Join(t.TempDir(), "q.db")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	assert.Error(t, rootCmd.Execute())
}

func TestDifficultyFlag(t *testing.T) {
	require.NoError(t, extractCmd.Flags().Set("difficulty", "mixed"))
	level, err := difficultyFlag(extractCmd)
	require.NoError(t, err)
	assert.Equal(t, quizgen.LevelMixed, level)

	require.NoError(t, extractCmd.Flags().Set("difficulty", "brutal"))
	_, err = difficultyFlag(extractCmd)
	assert.Error(t, err)

	require.NoError(t, extractCmd.Flags().Set("difficulty", string(quizgen.LevelMedium)))
}

func TestHistoryListsSavedDocuments(t *testing.T) {
	dbPath := savedStore(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"history", "--db", dbPath})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "cells.md")
	assert.Contains(t, out.String(), "hard")
}

func TestLLMListEmpty(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"llm", "list", "--db", filepath.Join(t.TempDir(), "q.db")})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "No generation calls recorded.\n", out.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "photosyn…", truncate("photosynthesis.md", 9))
	assert.Equal(t, "ñandú…", truncate("ñandúes-del-sur", 6))
}
