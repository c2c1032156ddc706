package parser

import "exam-ingest/internal/domain"

// Difficulty labels question n of an exam type. ENEM booklets rotate difficulty; the
// single-phase exams grow harder past fixed thresholds.
func Difficulty(n int, t domain.ExamType) string {
	switch t {
	case domain.ExamTypeENEMDay1, domain.ExamTypeENEMDay2:
		switch n % 3 {
		case 1:
			return domain.DifficultyEasy
		case 2:
			return domain.DifficultyMedium
		default:
			return domain.DifficultyHard
		}
	case domain.ExamTypeFUVEST1:
		return byThreshold(n, 20, 55)
	case domain.ExamTypeUNICAMP1:
		return byThreshold(n, 18, 48)
	default:
		return domain.DifficultyMedium
	}
}

func byThreshold(n, easyMax, mediumMax int) string {
	switch {
	case n <= easyMax:
		return domain.DifficultyEasy
	case n <= mediumMax:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyHard
	}
}

// LabelDifficulty sets the difficulty of every question from its number.
func LabelDifficulty(questions []*domain.ParsedQuestion, t domain.ExamType) {
	for _, q := range questions {
		q.Difficulty = Difficulty(q.Number, t)
	}
}
