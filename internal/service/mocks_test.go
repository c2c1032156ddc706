package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"exam-ingest/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockNotifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyImportSummary(ctx context.Context, results []*domain.ImportResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) ListNumbersByExam(ctx context.Context, examID string) ([]int, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockQuestionRepository) BulkInsert(ctx context.Context, questions []*domain.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) CountByExam(ctx context.Context, examID string) (int, error) {
	args := m.Called(ctx, examID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) CountBySubject(ctx context.Context) ([]domain.SubjectCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubjectCount), args.Error(1)
}

// --- in-memory store ---

// memStore backs both repositories with plain slices so tests can run several imports
// against the same state.
type memStore struct {
	exams     []*domain.Exam
	questions []*domain.Question
	insertErr error
	counts    []int // every value passed to UpdateQuestionCount
}

type memExamRepo struct{ s *memStore }

func (r *memExamRepo) FindByKey(_ context.Context, institution string, year int, session string) (*domain.Exam, error) {
	for _, e := range r.s.exams {
		if e.Institution == institution && e.Year == year && e.Session == session {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memExamRepo) Create(_ context.Context, exam *domain.Exam) error {
	exam.ID = fmt.Sprintf("exam-%d", len(r.s.exams)+1)
	r.s.exams = append(r.s.exams, exam)
	return nil
}

func (r *memExamRepo) UpdateQuestionCount(_ context.Context, examID string, count int) error {
	for _, e := range r.s.exams {
		if e.ID == examID {
			e.QuestionCount = count
			r.s.counts = append(r.s.counts, count)
			return nil
		}
	}
	return errors.New("exam not found")
}

type memQuestionRepo struct{ s *memStore }

func (r *memQuestionRepo) ListNumbersByExam(_ context.Context, examID string) ([]int, error) {
	var numbers []int
	for _, q := range r.s.questions {
		if q.ExamID == examID {
			numbers = append(numbers, q.Number)
		}
	}
	return numbers, nil
}

func (r *memQuestionRepo) BulkInsert(_ context.Context, questions []*domain.Question) error {
	if r.s.insertErr != nil {
		return r.s.insertErr
	}
	for _, q := range questions {
		q.ID = fmt.Sprintf("q-%d", len(r.s.questions)+1)
		r.s.questions = append(r.s.questions, q)
	}
	return nil
}

func (r *memQuestionRepo) CountByExam(_ context.Context, examID string) (int, error) {
	numbers, _ := r.ListNumbersByExam(context.Background(), examID)
	return len(numbers), nil
}

func (r *memQuestionRepo) Deactivate(_ context.Context, id string) error {
	for _, q := range r.s.questions {
		if q.ID == id {
			q.Active = false
			return nil
		}
	}
	return domain.NewNotFoundError("question not found")
}

func (r *memQuestionRepo) CountBySubject(_ context.Context) ([]domain.SubjectCount, error) {
	totals := map[string]int{}
	for _, q := range r.s.questions {
		if q.Active {
			totals[q.Subject]++
		}
	}
	out := make([]domain.SubjectCount, 0, len(totals))
	for subject, total := range totals {
		out = append(out, domain.SubjectCount{Subject: subject, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out, nil
}

// passthroughTxManager runs fn directly; the in-memory store has no transactions.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- fetch and extraction fakes ---

type fakeFetcher struct {
	docs  map[string]string
	errs  map[string]error
	calls map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{docs: map[string]string{}, errs: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	doc, ok := f.docs[url]
	if !ok {
		return nil, domain.NewFetchError(url, errors.New("unexpected status 404"))
	}
	return []byte(doc), nil
}

// lineExtractor turns every line of the document into one word, top to bottom.
type lineExtractor struct {
	calls int
}

func (e *lineExtractor) Extract(data []byte) ([]domain.Page, error) {
	e.calls++
	if string(data) == "%corrupt" {
		return nil, domain.NewExtractionError(errors.New("not a pdf"))
	}
	var page domain.Page
	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		page.Words = append(page.Words, domain.Word{Text: line, Top: 800 - float64(i)*20, Left: 50})
	}
	return []domain.Page{page}, nil
}

// examText renders n well-formed questions with four alternatives each.
func examText(n int) string {
	var sb strings.Builder
	for k := 1; k <= n; k++ {
		fmt.Fprintf(&sb, "QUESTÃO %d\nEnunciado da questão número %d com texto suficiente.\n"+
			"A) primeira opção\nB) segunda opção\nC) terceira opção\nD) quarta opção\n", k, k)
	}
	return sb.String()
}
