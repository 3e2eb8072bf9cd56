package quizgen

import "strings"

// Level is the overall difficulty requested for the quiz.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
	LevelMixed  Level = "mixed"
)

// Levels lists every accepted Level.
var Levels = []Level{LevelEasy, LevelMedium, LevelHard, LevelMixed}

// ParseLevel returns the Level matching s, ignoring case and surrounding
// whitespace.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Levels {
		if v == l {
			return l, true
		}
	}
	return "", false
}

// Request is the input to a single extraction.
type Request struct {
	Text       string `json:"text"`
	Difficulty Level  `json:"difficulty"`
}
