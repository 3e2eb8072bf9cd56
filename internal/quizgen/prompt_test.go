package quizgen

import (
	"strings"
	"testing"
)

func TestCompilePrompt_Deterministic(t *testing.T) {
	req := Request{Text: "Photosynthesis converts light to chemical energy.", Difficulty: LevelMixed}
	if CompilePrompt(req) != CompilePrompt(req) {
		t.Fatal("expected identical prompts for identical requests")
	}
}

func TestCompilePrompt_Tail(t *testing.T) {
	p := CompilePrompt(Request{Text: "  spaced text  ", Difficulty: LevelHard})
	want := "\n\nEDUCATIONAL_TEXT:   spaced text  \nDIFFICULTY: hard"
	if !strings.HasSuffix(p, want) {
		t.Fatalf("prompt tail mismatch:\n%q", p[len(p)-60:])
	}
}

func TestCompilePrompt_ShapeContract(t *testing.T) {
	p := CompilePrompt(Request{Text: "x", Difficulty: LevelEasy})

	if !strings.HasPrefix(p, SystemPrompt+"\n\nYou must reply ONLY with a pure, valid JSON object") {
		t.Errorf("unexpected prompt head: %q", p[:120])
	}

	lines := []string{
		`  "concepts": [{"name": "", "definition": "", "importance": 1}],`,
		`  "topicHierarchy": [{"topic": "", "subtopics": [{"subtopic": "", "concepts": [""]}]}],`,
		`  "quiz": [{"question": "", "options": ["", "", "", ""], "answer": "A", "difficulty": "easy", "relatedConcepts": [""]}],`,
		`  "selfCheck": "pass"`,
		"generate 10-15 multiple-choice questions (A-D options, only one correct, each marked easy/medium/hard, each mapped to related concepts), and a self-check.",
	}
	for _, l := range lines {
		if !strings.Contains(p, l) {
			t.Errorf("prompt missing %q", l)
		}
	}
	if strings.Contains(p, "`") {
		t.Error("prompt must not contain backticks")
	}
}
