package service

import (
	"context"
	"testing"

	"exam-ingest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testEntry = domain.CatalogEntry{
	SourceURL:   "https://download.inep.gov.br/enem/2024_PV_impresso_D1_CD1.pdf",
	Institution: "ENEM",
	Year:        2024,
	Session:     "1º Dia",
	Booklet:     "Dia 1 – CD1",
	ExamType:    domain.ExamTypeENEMDay1,
}

func parsed(n int, body string, alternatives ...string) *domain.ParsedQuestion {
	q := &domain.ParsedQuestion{Number: n, Body: body, ParseOK: true}
	copy(q.Alternatives[:], alternatives)
	return q
}

func newTestMerger() (*Merger, *memStore) {
	store := &memStore{}
	return NewMerger(&memExamRepo{s: store}, &memQuestionRepo{s: store}, passthroughTxManager{}, zap.NewNop()), store
}

func TestMerge_CreatesExamAndStagesQuestions(t *testing.T) {
	merger, store := newTestMerger()
	questions := []*domain.ParsedQuestion{
		parsed(1, "Enunciado completo da primeira questão.", "um", "dois", "três", "quatro", "cinco"),
		parsed(2, "Enunciado completo da segunda questão.", "um", "dois"),
	}
	questions[0].Subject = domain.SubjectHistory
	questions[0].CorrectAnswer = "D"
	questions[0].Difficulty = domain.DifficultyEasy

	counts, err := merger.Merge(context.Background(), questions, testEntry, testEntry.SourceURL)
	require.NoError(t, err)
	assert.Equal(t, MergeCounts{Saved: 2}, counts)

	require.Len(t, store.exams, 1)
	exam := store.exams[0]
	assert.Equal(t, "ENEM 2024 — 1º Dia", exam.Title)
	assert.Equal(t, 5, exam.DurationHours)
	assert.Equal(t, "INEP/MEC (inep.gov.br)", exam.SourceName)
	assert.Equal(t, 2, exam.QuestionCount)

	require.Len(t, store.questions, 2)
	first, second := store.questions[0], store.questions[1]
	assert.Equal(t, exam.ID, first.ExamID)
	assert.Equal(t, "D", first.CorrectAnswer)
	assert.Equal(t, domain.SubjectHistory, first.Subject)
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, "ENEM", first.Institution)
	assert.True(t, first.Active)
	assert.Equal(t, domain.SubjectGeneral, second.Subject)
	assert.Equal(t, "A", second.CorrectAnswer)
	assert.Equal(t, domain.DifficultyMedium, second.Difficulty)
}

func TestMerge_RejectsMissingFirstAlternatives(t *testing.T) {
	merger, store := newTestMerger()
	questions := []*domain.ParsedQuestion{
		parsed(1, "Enunciado sem as duas primeiras opções.", "", "", "três", "quatro", "cinco"),
		parsed(2, "Enunciado sem a opção B preenchida.", "um", " ", "três"),
		parsed(3, "Enunciado válido com opções A e B.", "um", "dois"),
	}

	counts, err := merger.Merge(context.Background(), questions, testEntry, testEntry.SourceURL)
	require.NoError(t, err)
	assert.Equal(t, MergeCounts{Saved: 1, ParseErrors: 2}, counts)
	require.Len(t, store.questions, 1)
	assert.Equal(t, 3, store.questions[0].Number)
}

func TestMerge_RejectsFailedAndShortQuestions(t *testing.T) {
	merger, store := newTestMerger()
	failed := parsed(1, "Enunciado suficientemente longo.", "um", "dois")
	failed.ParseOK = false
	failed.ErrorNote = "fewer than two alternatives found"

	questions := []*domain.ParsedQuestion{
		failed,
		parsed(2, "curto", "um", "dois"),
	}

	counts, err := merger.Merge(context.Background(), questions, testEntry, testEntry.SourceURL)
	require.NoError(t, err)
	assert.Equal(t, MergeCounts{ParseErrors: 2}, counts)
	assert.Empty(t, store.questions)
	assert.Empty(t, store.counts, "question count is only rewritten when something was saved")
}

func TestMerge_DuplicatesIncludeStoredAndStaged(t *testing.T) {
	merger, store := newTestMerger()
	ctx := context.Background()

	_, err := merger.Merge(ctx, []*domain.ParsedQuestion{
		parsed(1, "Enunciado da questão um já salva.", "um", "dois"),
	}, testEntry, testEntry.SourceURL)
	require.NoError(t, err)
	store.questions[0].Active = false

	counts, err := merger.Merge(ctx, []*domain.ParsedQuestion{
		parsed(1, "Enunciado da questão um já salva.", "um", "dois"),
		parsed(2, "Enunciado da questão dois nova.", "um", "dois"),
		parsed(2, "Repetição da questão dois no lote.", "um", "dois"),
	}, testEntry, testEntry.SourceURL)
	require.NoError(t, err)

	assert.Equal(t, MergeCounts{Saved: 1, Duplicates: 2}, counts)
	require.Len(t, store.exams, 1)
	assert.Equal(t, 2, store.exams[0].QuestionCount)
	assert.Equal(t, []int{1, 2}, store.counts)
}

func TestMerge_DuplicateCheckedBeforeAlternatives(t *testing.T) {
	merger, _ := newTestMerger()
	ctx := context.Background()

	_, err := merger.Merge(ctx, []*domain.ParsedQuestion{
		parsed(7, "Enunciado da questão sete salva.", "um", "dois"),
	}, testEntry, testEntry.SourceURL)
	require.NoError(t, err)

	counts, err := merger.Merge(ctx, []*domain.ParsedQuestion{
		parsed(7, "Enunciado da questão sete sem opções.", "", ""),
	}, testEntry, testEntry.SourceURL)
	require.NoError(t, err)
	assert.Equal(t, MergeCounts{Duplicates: 1}, counts)
}
