package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exam-ingest/internal/domain"
	"exam-ingest/internal/repository/models"
	"exam-ingest/internal/util"
)

// ExamRepositoryImpl implements domain.ExamRepository
type ExamRepositoryImpl struct {
	db DBTX
}

// NewExamRepository creates a new exam repository
func NewExamRepository(db DBTX) domain.ExamRepository {
	return &ExamRepositoryImpl{db: db}
}

// FindByKey implements domain.ExamRepository
func (r *ExamRepositoryImpl) FindByKey(ctx context.Context, institution string, year int, session string) (*domain.Exam, error) {
	executor := GetExecutor(ctx, r.db)

	query := executor.Rebind(`SELECT
		id "id",
		title "title",
		institution "institution",
		exam_year "exam_year",
		session_label "session_label",
		booklet "booklet",
		exam_type "exam_type",
		source_url "source_url",
		answer_key_url "answer_key_url",
		question_count "question_count",
		duration_hours "duration_hours",
		source_name "source_name",
		created_at "created_at"
	FROM exams
	WHERE institution = ? AND exam_year = ? AND session_label = ?`)

	var row models.Exam
	if err := executor.GetContext(ctx, &row, query, institution, year, session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find exam %s %d %s: %w", institution, year, session, err)
	}
	return toDomainExam(&row), nil
}

// Create implements domain.ExamRepository
func (r *ExamRepositoryImpl) Create(ctx context.Context, exam *domain.Exam) error {
	executor := GetExecutor(ctx, r.db)

	if exam.ID == "" {
		exam.ID = util.NewULID()
	}
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now()
	}

	query := `INSERT INTO exams (
		id, title, institution, exam_year, session_label, booklet, exam_type, source_url,
		answer_key_url, question_count, duration_hours, source_name, created_at
	) VALUES (
		:id, :title, :institution, :exam_year, :session_label, :booklet, :exam_type, :source_url,
		:answer_key_url, :question_count, :duration_hours, :source_name, :created_at
	)`

	if _, err := executor.NamedExecContext(ctx, query, toModelExam(exam)); err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return nil
}

// UpdateQuestionCount implements domain.ExamRepository
func (r *ExamRepositoryImpl) UpdateQuestionCount(ctx context.Context, examID string, count int) error {
	executor := GetExecutor(ctx, r.db)

	query := executor.Rebind(`UPDATE exams SET question_count = ? WHERE id = ?`)
	if _, err := executor.ExecContext(ctx, query, count, examID); err != nil {
		return fmt.Errorf("failed to update question count of exam %s: %w", examID, err)
	}
	return nil
}

func toModelExam(e *domain.Exam) *models.Exam {
	return &models.Exam{
		ID:            e.ID,
		Title:         e.Title,
		Institution:   e.Institution,
		ExamYear:      e.Year,
		SessionLabel:  e.Session,
		Booklet:       util.StringToNullString(e.Booklet),
		ExamType:      util.StringToNullString(string(e.ExamType)),
		SourceURL:     e.SourceURL,
		AnswerKeyURL:  util.StringToNullString(e.AnswerKeyURL),
		QuestionCount: e.QuestionCount,
		DurationHours: e.DurationHours,
		SourceName:    e.SourceName,
		CreatedAt:     e.CreatedAt,
	}
}

func toDomainExam(m *models.Exam) *domain.Exam {
	return &domain.Exam{
		ID:            m.ID,
		Title:         m.Title,
		Institution:   m.Institution,
		Year:          m.ExamYear,
		Session:       m.SessionLabel,
		Booklet:       m.Booklet.String,
		ExamType:      domain.ExamType(m.ExamType.String),
		SourceURL:     m.SourceURL,
		AnswerKeyURL:  m.AnswerKeyURL.String,
		QuestionCount: m.QuestionCount,
		DurationHours: m.DurationHours,
		SourceName:    m.SourceName,
		CreatedAt:     m.CreatedAt,
	}
}
