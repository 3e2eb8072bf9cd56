package quizgen

// SystemPrompt is sent as the system role message.
const SystemPrompt = "You are an autonomous knowledge extractor and quiz builder."

// promptTemplate is followed by the educational text and difficulty.
// Keep byte-identical; Normalize expects exactly this shape.
const promptTemplate = `You are an autonomous knowledge extractor and quiz builder.

You must reply ONLY with a pure, valid JSON object, without any markdown, comments, explanations, or code wrapping. Do NOT prefix or suffix your output, do not use code blocks.

Task: Given the EDUCATIONAL_TEXT and DIFFICULTY below, perform ALL steps using a SINGLE JSON return: clean input, split into sections, extract concepts (with definitions and importance 1-5), organize topic/subtopic hierarchy, generate 10-15 multiple-choice questions (A-D options, only one correct, each marked easy/medium/hard, each mapped to related concepts), and a self-check.

Return exactly this JSON shape (no markdown):
{
  "concepts": [{"name": "", "definition": "", "importance": 1}],
  "topicHierarchy": [{"topic": "", "subtopics": [{"subtopic": "", "concepts": [""]}]}],
  "quiz": [{"question": "", "options": ["", "", "", ""], "answer": "A", "difficulty": "easy", "relatedConcepts": [""]}],
  "selfCheck": "pass"
}

`

// CompilePrompt builds the user message for req. The text is embedded
// as given, without trimming.
func CompilePrompt(req Request) string {
	return promptTemplate +
		"EDUCATIONAL_TEXT: " + req.Text + "\n" +
		"DIFFICULTY: " + string(req.Difficulty)
}
