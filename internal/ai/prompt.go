package ai

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

const systemPrompt = "You are an expert TOEFL speaking evaluator. Provide detailed, constructive feedback. Do not use any emojis. Return only HTML content without markdown code blocks."

const rubric = `**Your task:**
Provide a detailed evaluation following this structure:

1. **Overall Score** (0-4 scale): give a score and briefly explain it.
2. **Strengths**: 2-3 specific positive points, quoting the response.
3. **Areas for Improvement**: 2-3 specific issues, quoting the response.
4. **Content & Development**: %s
5. **Language & Vocabulary**: name repetitive or basic words and give 3-5 advanced synonyms for each. Add 2-3 rephrasing examples as "You said: '...' → You could say: '...'".
6. **Grammar & Fluency**: grammatical errors with corrections, sentence variety.
7. **Recommendations**: 2-3 actionable tips for next time.

Format the answer as HTML: an <h4> title for EACH section (Overall Score, Strengths, Areas for Improvement, Content & Development, Language & Vocabulary, Grammar & Fluency, Recommendations), followed by <p> or <ul> content. Use <strong> for emphasis.

IMPORTANT:
- Do NOT use any emojis or special characters
- Do NOT wrap in markdown code blocks
- Return only pure HTML content`

// BuildPrompt renders the user message for one evaluation.
func BuildPrompt(req Request) string {
	var b strings.Builder

	if req.Task == tasks.Standalone {
		b.WriteString("You are an experienced TOEFL speaking evaluator. Evaluate this TOEFL Independent Speaking response.\n\n")
		fmt.Fprintf(&b, "**Question:** %s\n\n", req.Question)
	} else {
		kind, _ := tasks.KindOf(req.Task)
		fmt.Fprintf(&b, "You are an experienced TOEFL speaking evaluator. Evaluate this TOEFL %s response.\n\n", kind.Title)
		fmt.Fprintf(&b, "**Task Context:** %s", kind.Description)
		if !req.HasAudio {
			b.WriteString("\n\n**NOTE:** The student did not have access to the audio portion. Focus evaluation on language quality (vocabulary, grammar, phrasing) rather than content accuracy.")
		}
		if req.ReadingText != "" {
			fmt.Fprintf(&b, "\n\n**Reading Passage:**\n%s", req.ReadingText)
		}
		if req.Question != "" {
			fmt.Fprintf(&b, "\n\n**Question:** %s", req.Question)
		}
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "**Student's Response (transcribed):**\n%s\n\n", req.Transcript)
	fmt.Fprintf(&b, "**Statistics:**\n- Total words: %d\n- Words per minute: %.1f\n\n", req.WordCount, req.WPM())

	content := "Was the task addressed appropriately? Were ideas developed with sufficient detail? What could be improved?"
	if req.Task == tasks.Standalone {
		content = "Was the question answered directly? Were ideas developed with examples or reasons? Which additional ideas could have been included?"
	}
	fmt.Fprintf(&b, rubric, content)

	return b.String()
}
