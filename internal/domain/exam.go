package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExamType tags an exam format. It drives subject ranges, difficulty and duration.
type ExamType string

const (
	ExamTypeUnknown  ExamType = ""
	ExamTypeENEMDay1 ExamType = "ENEM_D1"
	ExamTypeENEMDay2 ExamType = "ENEM_D2"
	ExamTypeFUVEST1  ExamType = "FUVEST_1F"
	ExamTypeUNICAMP1 ExamType = "UNICAMP_1F"
)

// IsTwoDay reports whether the exam type belongs to a two-day administration.
func (t ExamType) IsTwoDay() bool {
	return t == ExamTypeENEMDay1 || t == ExamTypeENEMDay2
}

// DurationHours is the booklet duration stored with a newly created exam.
func (t ExamType) DurationHours() int {
	if t.IsTwoDay() {
		return 5
	}
	return 4
}

// Subject labels.
const (
	SubjectMathematics     = "Mathematics"
	SubjectPhysics         = "Physics"
	SubjectChemistry       = "Chemistry"
	SubjectBiology         = "Biology"
	SubjectHistory         = "History"
	SubjectGeography       = "Geography"
	SubjectPortuguese      = "Portuguese"
	SubjectEnglish         = "English"
	SubjectNaturalSciences = "Natural Sciences"

	// SubjectMixed marks a range that must be resolved by keyword scoring.
	SubjectMixed = "Mixed"
	// SubjectGeneral is used when neither a range nor a keyword matched.
	SubjectGeneral = "General"
)

// Difficulty labels.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// UnknownInstitution is the placeholder for sources that could not be identified.
const UnknownInstitution = "Unknown"

// Letters lists the alternative letters in order.
var Letters = [5]string{"A", "B", "C", "D", "E"}

// Word is a positioned word as produced by the PDF extractor. Larger Top is higher on the page.
type Word struct {
	Text string
	Top  float64
	Left float64
}

// Page holds the words of one PDF page.
type Page struct {
	Words []Word
}

// ParsedQuestion is a question candidate produced by the segmenter. It lives for one import call.
type ParsedQuestion struct {
	Number        int       `json:"number"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	Alternatives  [5]string `json:"alternatives"`
	CorrectAnswer string    `json:"correct_answer"`
	Difficulty    string    `json:"difficulty"`
	ParseOK       bool      `json:"parse_ok"`
	ErrorNote     string    `json:"error_note,omitempty"`
}

// Alternative returns the text for letter (A-E), or "" for anything else.
func (q *ParsedQuestion) Alternative(letter string) string {
	if i := LetterIndex(letter); i >= 0 {
		return q.Alternatives[i]
	}
	return ""
}

// SetAlternative stores text for letter (A-E). Unknown letters are ignored.
func (q *ParsedQuestion) SetAlternative(letter, text string) {
	if i := LetterIndex(letter); i >= 0 {
		q.Alternatives[i] = text
	}
}

// FilledAlternatives counts the non-empty alternatives.
func (q *ParsedQuestion) FilledAlternatives() int {
	n := 0
	for _, a := range q.Alternatives {
		if strings.TrimSpace(a) != "" {
			n++
		}
	}
	return n
}

// LetterIndex maps "A".."E" (any case) to 0..4, or -1.
func LetterIndex(letter string) int {
	if len(letter) != 1 {
		return -1
	}
	c := letter[0] | 0x20
	if c < 'a' || c > 'e' {
		return -1
	}
	return int(c - 'a')
}

// Exam is one persisted exam session.
type Exam struct {
	ID            string
	Title         string
	Institution   string
	Year          int
	Session       string
	Booklet       string
	ExamType      ExamType
	SourceURL     string
	AnswerKeyURL  string
	QuestionCount int
	DurationHours int
	SourceName    string
	CreatedAt     time.Time
}

// NewExam builds the exam record for a catalog entry on its first import.
func NewExam(entry CatalogEntry, sourceURL string, questionCount int) *Exam {
	return &Exam{
		Title:         fmt.Sprintf("%s %d — %s", entry.Institution, entry.Year, entry.Session),
		Institution:   entry.Institution,
		Year:          entry.Year,
		Session:       entry.Session,
		Booklet:       entry.Booklet,
		ExamType:      entry.ExamType,
		SourceURL:     sourceURL,
		AnswerKeyURL:  entry.AnswerKeyURL,
		QuestionCount: questionCount,
		DurationHours: entry.ExamType.DurationHours(),
		SourceName:    SourceName(entry.Institution),
		CreatedAt:     time.Now(),
	}
}

// SourceName is the publisher shown next to an institution.
func SourceName(institution string) string {
	switch institution {
	case "ENEM":
		return "INEP/MEC (inep.gov.br)"
	case "FUVEST":
		return "FUVEST (fuvest.br)"
	case "UNICAMP":
		return "COMVEST (comvest.unicamp.br)"
	default:
		return institution
	}
}

// Question is a persisted question.
type Question struct {
	ID            string
	ExamID        string
	Number        int
	Subject       string
	Body          string
	Alternatives  [5]string
	CorrectAnswer string
	Difficulty    string
	Year          int
	Institution   string
	Active        bool
	CreatedAt     time.Time
}

// SubjectCount is one row of the question-bank statistics.
type SubjectCount struct {
	Subject string `json:"subject" db:"subject"`
	Total   int    `json:"total" db:"total"`
}

// ImportResult is returned for every import call.
type ImportResult struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	SourceURL   string            `json:"source_url"`
	ErrorCode   ErrorCode         `json:"error_code,omitempty"`
	Saved       int               `json:"saved"`
	Duplicates  int               `json:"duplicates"`
	ParseErrors int               `json:"parse_errors"`
	Warnings    []string          `json:"warnings"`
	Questions   []*ParsedQuestion `json:"-"`
}

// Fail marks the result as failed with err.
func (r *ImportResult) Fail(message string, err error) {
	r.Success = false
	r.ErrorCode = CodeOf(err)
	r.Message = fmt.Sprintf("%s: %v", message, err)
	r.Warnings = append(r.Warnings, r.Message)
}

// BatchImportResult aggregates a multi-URL import.
type BatchImportResult struct {
	Results    []*ImportResult `json:"results"`
	TotalSaved int             `json:"total_saved"`
	TotalURLs  int             `json:"total_urls"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
}

// Add appends r and updates the aggregates.
func (b *BatchImportResult) Add(r *ImportResult) {
	b.Results = append(b.Results, r)
	b.TotalURLs++
	b.TotalSaved += r.Saved
	if r.Success {
		b.Succeeded++
	} else {
		b.Failed++
	}
}
