// Package prompt builds the instructions sent to the generation backend.
// Every builder is a pure function of its arguments.
package prompt

import (
	"fmt"
	"strings"
)

// StopMarker terminates the multiple-choice prompt so the model stops after the object.
const StopMarker = "[STOP]"

// MCKeys lists the JSON keys a multiple-choice item must carry, in prompt order.
var MCKeys = []string{"question", "options", "correct_index", "explanation"}

// Question asks for exactly one new interview question. Every entry of asked
// is listed, numbered from 1, under a do-not-repeat instruction.
func Question(domain, level string, asked []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a technical interviewer for %s at the %s level.\n\n", domain, level)
	fmt.Fprintf(&b, "Generate only ONE clear and concise interview question related to %s.\n\n", domain)

	if len(asked) > 0 {
		b.WriteString("Previously asked questions (DO NOT REPEAT THESE):\n")
		for i, q := range asked {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\n")
	}

	b.WriteString("DO NOT repeat any previously asked questions.\n")
	b.WriteString("DO NOT include any evaluation, strengths, weaknesses, or scores in your response.\n")
	b.WriteString("DO NOT provide an answer to the question.\n")
	b.WriteString("DO NOT prefix with 'Question:' - the caller adds that formatting.\n")
	b.WriteString("DO NOT include any text about evaluating a previous answer.\n\n")
	fmt.Fprintf(&b, "The question should be challenging but appropriate for the %s level.\n", level)
	b.WriteString("Make sure it is a different question than anything previously asked.\n")

	return b.String()
}

// Evaluation asks for a score out of 10, strengths and an "Areas to Focus:"
// section for answer. It forbids a follow-up question.
func Evaluation(domain, level, answer string) string {
	return fmt.Sprintf(`You are a technical interviewer for %s at the %s level.

The candidate's answer was: '%s'

Evaluate their answer with:
1. Score: Give a mark out of 10
2. STRENGTHS: 2-3 positive points about the answer
3. WEAKNESSES: 2-3 improvement points (label as "Areas to Focus:")

Use a professional but encouraging tone.
Format your response clearly with headings.
DO NOT include any questions in your evaluation.
DO NOT provide the next question.
Just focus on evaluating the answer provided.
`, domain, level, answer)
}

// MultipleChoice asks for a single JSON object with the keys in MCKeys and a
// 0-based correct_index. It ends with StopMarker.
func MultipleChoice(topics []string, level string) string {
	return fmt.Sprintf(`Create a single multiple-choice technical question about %s for a %s level interview.

FOLLOW THIS FORMAT EXACTLY:
{
  "question": "A clear, concise question statement",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correct_index": 0,
  "explanation": "Brief explanation of the correct answer."
}

IMPORTANT RULES:
1. The correct_index must be 0-based (0,1,2,3)
2. Only include valid JSON - no additional text, code blocks, or comments
3. Keep options short (1-2 lines each)
4. Make sure string quotes are properly escaped
5. Ensure all JSON brackets and quotes are properly closed

%s
`, strings.Join(topics, ", "), level, StopMarker)
}

// Report asks for the five-section evaluation report of a finished interview.
func Report(domain, level string, totalQuestions int, averageScore float64) string {
	return fmt.Sprintf(`Generate a comprehensive interview evaluation report for a %s interview at %s level.

Interview Summary:
- Total Questions: %d
- Average Score: %.1f/10
- Domain: %s
- Level: %s

Provide a professional evaluation with:
1. Overall Performance Summary
2. Strengths Demonstrated
3. Areas for Improvement
4. Recommendations for Future Learning
5. Final Assessment (Excellent/Good/Average/Needs Improvement)

Keep it constructive and encouraging.
`, domain, level, totalQuestions, averageScore, domain, level)
}
