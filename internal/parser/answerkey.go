package parser

import (
	"regexp"
	"strconv"
	"strings"

	"exam-ingest/internal/domain"
)

// answerKeyPattern matches "136 A", "136A", "136. A", "7:c" or "3-C" as whole-word tokens.
// The letter may sit on the line after its number, as in key tables whose cells are
// reconstructed one per line.
var answerKeyPattern = regexp.MustCompile(`(?i)\b(\d{1,3})\s*[.:\-]?\s*([A-E])\b`)

// ParseAnswerKey maps question numbers to their correct letter. When a number repeats, the
// last occurrence wins.
func ParseAnswerKey(text string) map[int]string {
	key := make(map[int]string)
	for _, m := range answerKeyPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		key[n] = strings.ToUpper(m[2])
	}
	return key
}

// ApplyAnswerKey sets the correct answer of every question present in key.
func ApplyAnswerKey(questions []*domain.ParsedQuestion, key map[int]string) {
	for _, q := range questions {
		if letter, ok := key[q.Number]; ok {
			q.CorrectAnswer = letter
		}
	}
}
