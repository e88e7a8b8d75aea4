// Package sanitizer turns raw generator output into display-safe text and
// validated entities. Generator output is treated as untrusted input.
package sanitizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/prompt"
	"github.com/futig/interview-backend/internal/pkg/validator"
)

var (
	ErrRepairFailed     = fmt.Errorf("%w: no parseable JSON object", entity.ErrMalformedGeneration)
	ErrValidationFailed = fmt.Errorf("%w: multiple-choice schema violated", entity.ErrMalformedGeneration)
)

const (
	QuestionHeading = "<strong class='question-heading'>Question:</strong> "
	LineBreak       = "<br>"

	EvaluationErrorHTML = "<strong>Evaluation Error:</strong> Could not evaluate the answer."
)

// LeakageMarkers end a generated question. Text from the earliest marker on
// belongs to an evaluation the model was told not to write.
var LeakageMarkers = []string{"STRENGTHS:", "WEAKNESSES:", "Score:", "Areas to Focus:"}

// EvaluationLabels are emphasised in evaluation markup.
var EvaluationLabels = []string{"STRENGTHS:", "WEAKNESSES:", "Areas to Focus:", "Score:"}

var bulletRe = regexp.MustCompile(`•\s*`)

var mcValidator = validator.New()

// CleanQuestionText cuts raw at the first leakage marker and trims it. It
// returns the plain text kept in the question history and the display markup.
func CleanQuestionText(raw string) (string, string) {
	cut := len(raw)
	for _, marker := range LeakageMarkers {
		if i := strings.Index(raw, marker); i >= 0 && i < cut {
			cut = i
		}
	}

	clean := strings.TrimSpace(raw[:cut])

	return clean, FormatQuestionHTML(clean)
}

// FormatQuestionHTML escapes text and prefixes it with the question heading.
func FormatQuestionHTML(text string) string {
	return QuestionHeading + newlinesToBreaks(html.EscapeString(text))
}

// ExtractJSONObject recovers the object embedded in raw. Code fences are
// dropped and the slice from the first '{' to the last '}' is decoded.
// Numbers are kept as json.Number.
func ExtractJSONObject(raw string) (map[string]any, error) {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no braces in output", ErrRepairFailed)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text[start : end+1])))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepairFailed, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: null object", ErrRepairFailed)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: extra data after object", ErrRepairFailed)
	}

	return obj, nil
}

// ValidateMCSchema converts obj into a multiple-choice item. obj must hold
// exactly the keys in prompt.MCKeys, options must hold at least three strings and
// correct_index must be an integer index into options.
func ValidateMCSchema(obj map[string]any) (*entity.MCItem, error) {
	for _, key := range prompt.MCKeys {
		if _, ok := obj[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrValidationFailed, key)
		}
	}
	if len(obj) != len(prompt.MCKeys) {
		return nil, fmt.Errorf("%w: expected only keys %v, got %d keys", ErrValidationFailed, prompt.MCKeys, len(obj))
	}

	question, ok := obj["question"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: question is not a string", ErrValidationFailed)
	}
	explanation, ok := obj["explanation"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: explanation is not a string", ErrValidationFailed)
	}

	rawOptions, ok := obj["options"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: options is not a list", ErrValidationFailed)
	}
	options := make([]string, 0, len(rawOptions))
	for i, o := range rawOptions {
		s, ok := o.(string)
		if !ok {
			return nil, fmt.Errorf("%w: option %d is not a string", ErrValidationFailed, i)
		}
		options = append(options, s)
	}

	index, err := toIndex(obj["correct_index"])
	if err != nil {
		return nil, fmt.Errorf("%w: correct_index: %v", ErrValidationFailed, err)
	}

	item := &entity.MCItem{
		Question:     question,
		Options:      options,
		CorrectIndex: index,
		Explanation:  explanation,
	}
	if err := mcValidator.Struct(item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	return item, nil
}

func toIndex(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n.String())
		}
		return int(i), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%g is not an integer", n)
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// RepairOrFallback builds a placeholder item that embeds the topics. The
// wording depends on why generation failed. The correct index is always 1.
func RepairOrFallback(topics []string, level string, cause error) *entity.MCItem {
	t := strings.Join(topics, ", ")

	switch {
	case errors.Is(cause, ErrValidationFailed):
		return &entity.MCItem{
			Question: fmt.Sprintf("Which of the following best describes a key concept in %s at the %s level?", t, level),
			Options: []string{
				"Option A - This is a placeholder option",
				fmt.Sprintf("Option B - This is the correct answer about %s", t),
				"Option C - This is another placeholder option",
				"Option D - This is a final placeholder option",
			},
			CorrectIndex: 1,
			Explanation:  fmt.Sprintf("Option B correctly describes a fundamental concept in %s.", t),
		}
	case errors.Is(cause, entity.ErrBackendUnavailable):
		return &entity.MCItem{
			Question: fmt.Sprintf("What is a primary advantage of using %s at the %s level?", t, level),
			Options: []string{
				"Advantage A - This is a placeholder",
				"Advantage B - This is the correct answer",
				"Advantage C - This is incorrect",
				"Advantage D - This is also incorrect",
			},
			CorrectIndex: 1,
			Explanation:  "Advantage B provides the most significant benefit in this context.",
		}
	default:
		return &entity.MCItem{
			Question: fmt.Sprintf("Which of the following is true about %s at the %s level?", t, level),
			Options: []string{
				"First statement - This is a placeholder",
				"Second statement - This is the correct statement",
				"Third statement - This is incorrect",
				"Fourth statement - This is also incorrect",
			},
			CorrectIndex: 1,
			Explanation:  fmt.Sprintf("The second statement correctly describes %s.", t),
		}
	}
}

// FormatEvaluationHTML escapes raw, normalises bullets, emphasises the
// section labels and turns newlines into line breaks.
func FormatEvaluationHTML(raw string) string {
	text := html.EscapeString(strings.TrimSpace(raw))
	text = bulletRe.ReplaceAllString(text, "• ")
	for _, label := range EvaluationLabels {
		text = strings.ReplaceAll(text, label, "<strong>"+label+"</strong>")
	}
	return newlinesToBreaks(text)
}

func newlinesToBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", LineBreak)
}
