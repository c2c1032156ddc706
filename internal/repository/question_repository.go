package repository

import (
	"context"
	"fmt"
	"time"

	"exam-ingest/internal/domain"
	"exam-ingest/internal/repository/models"
	"exam-ingest/internal/util"
)

// QuestionRepositoryImpl implements domain.QuestionRepository
type QuestionRepositoryImpl struct {
	db DBTX
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db DBTX) domain.QuestionRepository {
	return &QuestionRepositoryImpl{db: db}
}

// ListNumbersByExam implements domain.QuestionRepository
func (r *QuestionRepositoryImpl) ListNumbersByExam(ctx context.Context, examID string) ([]int, error) {
	executor := GetExecutor(ctx, r.db)

	query := executor.Rebind(`SELECT question_number FROM questions WHERE exam_id = ? ORDER BY question_number`)
	var numbers []int
	if err := executor.SelectContext(ctx, &numbers, query, examID); err != nil {
		return nil, fmt.Errorf("failed to list question numbers of exam %s: %w", examID, err)
	}
	return numbers, nil
}

// BulkInsert implements domain.QuestionRepository. Rows are inserted one statement at a
// time because Oracle has no multi-row VALUES list.
func (r *QuestionRepositoryImpl) BulkInsert(ctx context.Context, questions []*domain.Question) error {
	executor := GetExecutor(ctx, r.db)

	query := `INSERT INTO questions (
		id, exam_id, question_number, subject, body,
		alternative_a, alternative_b, alternative_c, alternative_d, alternative_e,
		correct_answer, difficulty, exam_year, institution, active, created_at
	) VALUES (
		:id, :exam_id, :question_number, :subject, :body,
		:alternative_a, :alternative_b, :alternative_c, :alternative_d, :alternative_e,
		:correct_answer, :difficulty, :exam_year, :institution, :active, :created_at
	)`

	now := time.Now()
	for _, q := range questions {
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}
		if _, err := executor.NamedExecContext(ctx, query, toModelQuestion(q)); err != nil {
			return fmt.Errorf("failed to insert question %d of exam %s: %w", q.Number, q.ExamID, err)
		}
	}
	return nil
}

// CountByExam implements domain.QuestionRepository
func (r *QuestionRepositoryImpl) CountByExam(ctx context.Context, examID string) (int, error) {
	executor := GetExecutor(ctx, r.db)

	query := executor.Rebind(`SELECT COUNT(*) FROM questions WHERE exam_id = ?`)
	var count int
	if err := executor.GetContext(ctx, &count, query, examID); err != nil {
		return 0, fmt.Errorf("failed to count questions of exam %s: %w", examID, err)
	}
	return count, nil
}

// Deactivate implements domain.QuestionRepository
func (r *QuestionRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	executor := GetExecutor(ctx, r.db)

	query := executor.Rebind(`UPDATE questions SET active = 0 WHERE id = ?`)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate question %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for question %s: %w", id, err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("question %s not found", id))
	}
	return nil
}

// CountBySubject implements domain.QuestionRepository
func (r *QuestionRepositoryImpl) CountBySubject(ctx context.Context) ([]domain.SubjectCount, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT subject "subject", COUNT(*) "total"
	FROM questions
	WHERE active = 1
	GROUP BY subject
	ORDER BY COUNT(*) DESC, subject`

	var counts []domain.SubjectCount
	if err := executor.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count questions by subject: %w", err)
	}
	return counts, nil
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:             q.ID,
		ExamID:         q.ExamID,
		QuestionNumber: q.Number,
		Subject:        q.Subject,
		Body:           q.Body,
		AlternativeA:   q.Alternatives[0],
		AlternativeB:   q.Alternatives[1],
		AlternativeC:   util.StringToNullString(q.Alternatives[2]),
		AlternativeD:   util.StringToNullString(q.Alternatives[3]),
		AlternativeE:   util.StringToNullString(q.Alternatives[4]),
		CorrectAnswer:  q.CorrectAnswer,
		Difficulty:     q.Difficulty,
		ExamYear:       q.Year,
		Institution:    q.Institution,
		Active:         util.BoolToInt(q.Active),
		CreatedAt:      q.CreatedAt,
	}
}
