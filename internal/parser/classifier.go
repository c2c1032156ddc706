package parser

import (
	"strings"

	"exam-ingest/internal/domain"
)

// Classify scores text against every subject's keywords and returns the best subject,
// or General when nothing matched.
func Classify(text string) string {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return domain.SubjectGeneral
	}

	best, bestScore := domain.SubjectGeneral, 0
	for _, s := range subjectTable {
		score := 0
		for _, kw := range s.keywords {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			best, bestScore = s.subject, score
		}
	}
	return best
}

// ClassifyQuestions fills the subject of questions that are unset or mixed, using the body
// and the first two alternatives.
func ClassifyQuestions(questions []*domain.ParsedQuestion) {
	for _, q := range questions {
		if q.Subject != "" && q.Subject != domain.SubjectMixed {
			continue
		}
		q.Subject = Classify(q.Body + " " + q.Alternatives[0] + " " + q.Alternatives[1])
	}
}
