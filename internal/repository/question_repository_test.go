package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"exam-ingest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRepository_ListNumbersByExam(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionRepository(db)

	mock.ExpectQuery(`SELECT question_number FROM questions WHERE exam_id = \? ORDER BY question_number`).
		WithArgs("exam-1").
		WillReturnRows(sqlmock.NewRows([]string{"question_number"}).AddRow(1).AddRow(2).AddRow(7))

	numbers, err := repo.ListNumbersByExam(context.Background(), "exam-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 7}, numbers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_BulkInsert(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionRepository(db)

	questions := []*domain.Question{
		{
			ExamID:        "exam-1",
			Number:        1,
			Subject:       domain.SubjectMathematics,
			Body:          "Quanto vale dois mais dois?",
			Alternatives:  [5]string{"3", "4", "", "", ""},
			CorrectAnswer: "B",
			Difficulty:    domain.DifficultyEasy,
			Year:          2023,
			Institution:   "ENEM",
			Active:        true,
		},
		{
			ExamID:        "exam-1",
			Number:        2,
			Subject:       domain.SubjectGeneral,
			Body:          "Qual alternativa está correta?",
			Alternatives:  [5]string{"a", "b", "c", "d", "e"},
			CorrectAnswer: "A",
			Difficulty:    domain.DifficultyEasy,
			Year:          2023,
			Institution:   "ENEM",
			Active:        true,
		},
	}

	mock.ExpectExec(`INSERT INTO questions`).
		WithArgs(sqlmock.AnyArg(), "exam-1", 1, domain.SubjectMathematics, "Quanto vale dois mais dois?",
			"3", "4", nil, nil, nil, "B", domain.DifficultyEasy, 2023, "ENEM", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO questions`).
		WithArgs(sqlmock.AnyArg(), "exam-1", 2, domain.SubjectGeneral, "Qual alternativa está correta?",
			"a", "b", "c", "d", "e", "A", domain.DifficultyEasy, 2023, "ENEM", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.BulkInsert(context.Background(), questions))
	for _, q := range questions {
		assert.Len(t, q.ID, 26)
		assert.False(t, q.CreatedAt.IsZero())
	}
	assert.NotEqual(t, questions[0].ID, questions[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_BulkInsert_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionRepository(db)

	mock.ExpectExec(`INSERT INTO questions`).WillReturnError(errors.New("unique constraint violated"))

	err := repo.BulkInsert(context.Background(), []*domain.Question{{ExamID: "exam-1", Number: 3}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "question 3")
}

func TestQuestionRepository_CountByExam(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions WHERE exam_id = \?`).
		WithArgs("exam-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountByExam(context.Background(), "exam-1")
	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_Deactivate(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantCode domain.ErrorCode
		wantErr  bool
	}{
		{name: "deactivated", affected: 1},
		{name: "unknown id", affected: 0, wantErr: true, wantCode: domain.ErrNotFound},
		{name: "database error", execErr: sql.ErrConnDone, wantErr: true, wantCode: domain.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewQuestionRepository(db)

			exp := mock.ExpectExec(`UPDATE questions SET active = 0 WHERE id = \?`).WithArgs("q-1")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.Deactivate(context.Background(), "q-1")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.CodeOf(err))
		})
	}
}

func TestQuestionRepository_CountBySubject(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionRepository(db)

	mock.ExpectQuery(`(?s)SELECT subject "subject", COUNT\(\*\) "total".*WHERE active = 1.*GROUP BY subject`).
		WillReturnRows(sqlmock.NewRows([]string{"subject", "total"}).
			AddRow(domain.SubjectMathematics, 45).
			AddRow(domain.SubjectHistory, 12))

	counts, err := repo.CountBySubject(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.SubjectCount{
		{Subject: domain.SubjectMathematics, Total: 45},
		{Subject: domain.SubjectHistory, Total: 12},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
