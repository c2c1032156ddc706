package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"exam-ingest/internal/domain"

	"go.uber.org/zap"
)

// minBodyRunes is the shortest body a question may be stored with.
const minBodyRunes = 10

// MergeCounts reports the outcome of one merge.
type MergeCounts struct {
	Saved       int
	Duplicates  int
	ParseErrors int
}

// Merger writes parsed questions into the store. It is the only place duplicates are
// suppressed: callers hand it the full parsed batch.
type Merger struct {
	examRepo     domain.ExamRepository
	questionRepo domain.QuestionRepository
	txManager    domain.TransactionManager
	logger       *zap.Logger
}

// NewMerger creates a new Merger.
func NewMerger(
	examRepo domain.ExamRepository,
	questionRepo domain.QuestionRepository,
	txManager domain.TransactionManager,
	logger *zap.Logger,
) *Merger {
	return &Merger{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Merge finds or creates the exam for entry and inserts every new, well-formed question
// inside a single transaction. Any store failure is returned as a PERSISTENCE_ERROR and
// nothing from this call is kept.
func (m *Merger) Merge(ctx context.Context, questions []*domain.ParsedQuestion, entry domain.CatalogEntry, sourceURL string) (MergeCounts, error) {
	var counts MergeCounts

	err := m.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		counts = MergeCounts{}

		exam, err := m.examRepo.FindByKey(txCtx, entry.Institution, entry.Year, entry.Session)
		if err != nil {
			return err
		}
		if exam == nil {
			exam = domain.NewExam(entry, sourceURL, len(questions))
			if err := m.examRepo.Create(txCtx, exam); err != nil {
				return err
			}
			m.logger.Info("Created exam",
				zap.String("exam_id", exam.ID),
				zap.String("title", exam.Title))
		}

		stored, err := m.questionRepo.ListNumbersByExam(txCtx, exam.ID)
		if err != nil {
			return err
		}
		taken := make(map[int]bool, len(stored)+len(questions))
		for _, n := range stored {
			taken[n] = true
		}

		var staged []*domain.Question
		for _, q := range questions {
			switch {
			case !q.ParseOK || utf8.RuneCountInString(strings.TrimSpace(q.Body)) < minBodyRunes:
				counts.ParseErrors++
			case taken[q.Number]:
				counts.Duplicates++
			case strings.TrimSpace(q.Alternatives[0]) == "" || strings.TrimSpace(q.Alternatives[1]) == "":
				counts.ParseErrors++
			default:
				taken[q.Number] = true
				staged = append(staged, newQuestion(exam, q))
			}
		}

		if len(staged) == 0 {
			return nil
		}
		if err := m.questionRepo.BulkInsert(txCtx, staged); err != nil {
			return err
		}
		counts.Saved = len(staged)

		total, err := m.questionRepo.CountByExam(txCtx, exam.ID)
		if err != nil {
			return err
		}
		return m.examRepo.UpdateQuestionCount(txCtx, exam.ID, total)
	})
	if err != nil {
		return MergeCounts{}, domain.NewPersistenceError("failed to save questions", err)
	}
	return counts, nil
}

func newQuestion(exam *domain.Exam, q *domain.ParsedQuestion) *domain.Question {
	subject := strings.TrimSpace(q.Subject)
	if subject == "" {
		subject = domain.SubjectGeneral
	}
	answer := strings.TrimSpace(q.CorrectAnswer)
	if answer == "" {
		answer = domain.Letters[0]
	}
	difficulty := q.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}

	question := &domain.Question{
		ExamID:        exam.ID,
		Number:        q.Number,
		Subject:       subject,
		Body:          strings.TrimSpace(q.Body),
		CorrectAnswer: answer,
		Difficulty:    difficulty,
		Year:          exam.Year,
		Institution:   exam.Institution,
		Active:        true,
	}
	for i, alt := range q.Alternatives {
		question.Alternatives[i] = strings.TrimSpace(alt)
	}
	return question
}
