package domain

import "context"

// ImportService defines the exam ingestion operations exposed to the HTTP layer and CLIs
type ImportService interface {
	// ImportFromURL imports one exam document. keyURL overrides the catalogued answer key.
	ImportFromURL(ctx context.Context, url, keyURL string) *ImportResult

	// ImportFromURLList imports each URL in order, pausing between requests
	ImportFromURLList(ctx context.Context, urls []string) *BatchImportResult

	// ImportAllKnownSources imports every catalogued source in order
	ImportAllKnownSources(ctx context.Context) []*ImportResult

	// ListKnownSources returns the static catalog
	ListKnownSources() []CatalogEntry
}

// QuestionBankService exposes the soft-delete and statistics operations over stored questions
type QuestionBankService interface {
	DeactivateQuestion(ctx context.Context, id string) error
	SubjectStats(ctx context.Context) ([]SubjectCount, error)
}

// ExamRepository defines the interface for exam persistence
type ExamRepository interface {
	// FindByKey returns the exam for (institution, year, session), or nil if none exists
	FindByKey(ctx context.Context, institution string, year int, session string) (*Exam, error)

	// Create persists a new exam and assigns its ID
	Create(ctx context.Context, exam *Exam) error

	// UpdateQuestionCount sets the stored question total of an exam
	UpdateQuestionCount(ctx context.Context, examID string, count int) error
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// ListNumbersByExam returns every stored question number of an exam, active or not
	ListNumbersByExam(ctx context.Context, examID string) ([]int, error)

	// BulkInsert persists questions and assigns their IDs
	BulkInsert(ctx context.Context, questions []*Question) error

	// CountByExam counts stored questions of an exam, active or not
	CountByExam(ctx context.Context, examID string) (int, error)

	// Deactivate clears the active flag. It returns a NOT_FOUND DomainError for unknown ids.
	Deactivate(ctx context.Context, id string) error

	// CountBySubject groups active questions by subject
	CountBySubject(ctx context.Context) ([]SubjectCount, error)
}

// TransactionManager runs fn inside a single database transaction carried by ctx
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DocumentFetcher downloads raw document bytes
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// WordExtractor turns PDF bytes into positioned words per page
type WordExtractor interface {
	Extract(data []byte) ([]Page, error)
}

// Notifier announces the outcome of a full catalog import
type Notifier interface {
	NotifyImportSummary(ctx context.Context, results []*ImportResult) error
}
