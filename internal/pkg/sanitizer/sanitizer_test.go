package sanitizer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanQuestionText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantClean string
		wantHTML  string
	}{
		{
			name:      "plain",
			raw:       "  What is a closure?  ",
			wantClean: "What is a closure?",
			wantHTML:  QuestionHeading + "What is a closure?",
		},
		{
			name:      "score_leak",
			raw:       "What is a closure?\n\nScore: 8/10",
			wantClean: "What is a closure?",
			wantHTML:  QuestionHeading + "What is a closure?",
		},
		{
			name:      "earliest_marker_wins",
			raw:       "Explain GIL.\nAreas to Focus: x\nSTRENGTHS: y",
			wantClean: "Explain GIL.",
			wantHTML:  QuestionHeading + "Explain GIL.",
		},
		{
			name:      "case_sensitive_markers",
			raw:       "How is the score: computed in ranking?",
			wantClean: "How is the score: computed in ranking?",
			wantHTML:  QuestionHeading + "How is the score: computed in ranking?",
		},
		{
			name:      "multiline",
			raw:       "Consider:\nx := []int{}\nWhat is len(x)?",
			wantClean: "Consider:\nx := []int{}\nWhat is len(x)?",
			wantHTML:  QuestionHeading + "Consider:<br>x := []int{}<br>What is len(x)?",
		},
		{
			name:      "markup_escaped",
			raw:       "What does <script> do?",
			wantClean: "What does <script> do?",
			wantHTML:  QuestionHeading + "What does &lt;script&gt; do?",
		},
		{
			name:      "only_leak",
			raw:       "WEAKNESSES: none",
			wantClean: "",
			wantHTML:  QuestionHeading,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clean, formatted := CleanQuestionText(tt.raw)
			assert.Equal(t, tt.wantClean, clean)
			assert.Equal(t, tt.wantHTML, formatted)
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	const object = `{"question": "Q?", "options": ["a", "b", "c"], "correct_index": 1, "explanation": "E"}`

	want := map[string]any{
		"question":      "Q?",
		"options":       []any{"a", "b", "c"},
		"correct_index": json.Number("1"),
		"explanation":   "E",
	}

	recovered := []struct {
		name string
		raw  string
	}{
		{name: "fenced", raw: "```json\n" + object + "\n```"},
		{name: "prose_wrapped", raw: "Here is your question: " + object + " Thanks!"},
		{name: "bare", raw: object},
		{name: "plain_fence", raw: "```\n" + object + "\n```\n[STOP]"},
	}

	for _, tt := range recovered {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			obj, err := ExtractJSONObject(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, want, obj)
		})
	}

	failures := []struct {
		name string
		raw  string
	}{
		{name: "no_braces", raw: "I cannot answer that."},
		{name: "truncated", raw: `{"question": "Q?", "options": ["a"`},
		{name: "reversed_braces", raw: "} nothing {"},
		{name: "trailing_comma", raw: `{"question": "Q?",}`},
		{name: "trailing_object", raw: object + ` and {"question": "other"}`},
		{name: "extra_closing_brace", raw: object + "}"},
	}

	for _, tt := range failures {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			obj, err := ExtractJSONObject(tt.raw)
			assert.Nil(t, obj)
			assert.ErrorIs(t, err, ErrRepairFailed)
			assert.ErrorIs(t, err, entity.ErrMalformedGeneration)
		})
	}
}

func TestValidateMCSchema(t *testing.T) {
	t.Parallel()

	base := func() map[string]any {
		return map[string]any{
			"question":      "Which index suits range scans?",
			"options":       []any{"Hash", "B-tree", "Bitmap", "GIN"},
			"correct_index": json.Number("1"),
			"explanation":   "B-trees are ordered.",
		}
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		item, err := ValidateMCSchema(base())
		require.NoError(t, err)
		assert.Equal(t, &entity.MCItem{
			Question:     "Which index suits range scans?",
			Options:      []string{"Hash", "B-tree", "Bitmap", "GIN"},
			CorrectIndex: 1,
			Explanation:  "B-trees are ordered.",
		}, item)
	})

	t.Run("float_index_from_plain_decode", func(t *testing.T) {
		t.Parallel()

		obj := base()
		obj["correct_index"] = float64(3)
		item, err := ValidateMCSchema(obj)
		require.NoError(t, err)
		assert.Equal(t, 3, item.CorrectIndex)
	})

	invalid := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing_question", mutate: func(m map[string]any) { delete(m, "question") }},
		{name: "missing_explanation", mutate: func(m map[string]any) { delete(m, "explanation") }},
		{name: "missing_correct_index", mutate: func(m map[string]any) { delete(m, "correct_index") }},
		{name: "two_options", mutate: func(m map[string]any) { m["options"] = []any{"a", "b"}; m["correct_index"] = json.Number("0") }},
		{name: "options_not_list", mutate: func(m map[string]any) { m["options"] = "a, b, c" }},
		{name: "option_not_string", mutate: func(m map[string]any) { m["options"] = []any{"a", json.Number("2"), "c"} }},
		{name: "index_out_of_range", mutate: func(m map[string]any) { m["correct_index"] = json.Number("4") }},
		{name: "negative_index", mutate: func(m map[string]any) { m["correct_index"] = json.Number("-1") }},
		{name: "fractional_index", mutate: func(m map[string]any) { m["correct_index"] = json.Number("1.5") }},
		{name: "string_index", mutate: func(m map[string]any) { m["correct_index"] = "1" }},
		{name: "extra_key", mutate: func(m map[string]any) { m["difficulty"] = "hard" }},
		{name: "question_not_string", mutate: func(m map[string]any) { m["question"] = []any{"Q"} }},
	}

	for _, tt := range invalid {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			obj := base()
			tt.mutate(obj)

			item, err := ValidateMCSchema(obj)
			assert.Nil(t, item)
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.ErrorIs(t, err, entity.ErrMalformedGeneration)
		})
	}
}

func TestRepairOrFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		cause        error
		wantQuestion string
		wantOption   string
	}{
		{
			name:         "validation_failed",
			cause:        ErrValidationFailed,
			wantQuestion: "Which of the following best describes a key concept in SQL at the advanced level?",
			wantOption:   "Option B - This is the correct answer about SQL",
		},
		{
			name:         "repair_failed",
			cause:        ErrRepairFailed,
			wantQuestion: "Which of the following is true about SQL at the advanced level?",
			wantOption:   "Second statement - This is the correct statement",
		},
		{
			name:         "backend_unavailable",
			cause:        errors.Join(entity.ErrBackendUnavailable, errors.New("timeout")),
			wantQuestion: "What is a primary advantage of using SQL at the advanced level?",
			wantOption:   "Advantage B - This is the correct answer",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := RepairOrFallback([]string{"SQL"}, "advanced", tt.cause)
			require.NotNil(t, item)
			assert.Contains(t, item.Question, "SQL")
			assert.Equal(t, tt.wantQuestion, item.Question)
			assert.Equal(t, 1, item.CorrectIndex)
			assert.Equal(t, tt.wantOption, item.Options[item.CorrectIndex])
			assert.Len(t, item.Options, 4)
			assert.NotEmpty(t, item.Explanation)
			assert.NoError(t, mcValidator.Struct(item))
		})
	}
}

func TestFormatEvaluationHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "labels_and_bullets",
			raw:  "Score: 7/10\nSTRENGTHS:\n•   Clear\n•Concise\nAreas to Focus:\n• Depth",
			want: "<strong>Score:</strong> 7/10<br><strong>STRENGTHS:</strong><br>• Clear<br>• Concise<br><strong>Areas to Focus:</strong><br>• Depth",
		},
		{
			name: "weaknesses_label",
			raw:  "WEAKNESSES: none",
			want: "<strong>WEAKNESSES:</strong> none",
		},
		{
			name: "escaped",
			raw:  "Use <b>tags</b> & more",
			want: "Use &lt;b&gt;tags&lt;/b&gt; &amp; more",
		},
		{
			name: "trimmed",
			raw:  "\n\nGood answer.\n",
			want: "Good answer.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, FormatEvaluationHTML(tt.raw))
		})
	}
}
