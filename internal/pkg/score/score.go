package score

import (
	"regexp"
	"strconv"
)

// Default is returned when the evaluation text carries no score.
const Default = 5.0

var scoreRe = regexp.MustCompile(`(?i)score:?\s*(\d+(?:\.\d+)?)`)

// Extract returns the first number that follows the word "score" in text,
// with an optional colon between them. Any such number is accepted, even one
// inside an unrelated sentence.
func Extract(text string) float64 {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return Default
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Default
	}

	return v
}
