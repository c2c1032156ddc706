package models

import (
	"database/sql"
	"time"
)

// Exam is the row shape of the exams table.
type Exam struct {
	ID            string         `db:"id"`             // ULID
	Title         string         `db:"title"`
	Institution   string         `db:"institution"`    // ENEM, FUVEST, UNICAMP or Unknown
	ExamYear      int            `db:"exam_year"`      // Year of administration
	SessionLabel  string         `db:"session_label"`  // 1º Dia, 2º Dia, 1ª Fase
	Booklet       sql.NullString `db:"booklet"`        // Booklet color/code, if known
	ExamType      sql.NullString `db:"exam_type"`      // ENEM_D1, ENEM_D2, FUVEST_1F, UNICAMP_1F or NULL
	SourceURL     string         `db:"source_url"`     // URL the questions were imported from
	AnswerKeyURL  sql.NullString `db:"answer_key_url"` // URL of the answer key, if any
	QuestionCount int            `db:"question_count"` // Stored questions, active or not
	DurationHours int            `db:"duration_hours"` // Booklet duration
	SourceName    string         `db:"source_name"`    // Publisher
	CreatedAt     time.Time      `db:"created_at"`
}

// Question is the row shape of the questions table.
type Question struct {
	ID             string         `db:"id"`              // ULID
	ExamID         string         `db:"exam_id"`         // Foreign key to exams
	QuestionNumber int            `db:"question_number"` // Unique within the exam
	Subject        string         `db:"subject"`
	Body           string         `db:"body"`
	AlternativeA   string         `db:"alternative_a"`
	AlternativeB   string         `db:"alternative_b"`
	AlternativeC   sql.NullString `db:"alternative_c"`
	AlternativeD   sql.NullString `db:"alternative_d"`
	AlternativeE   sql.NullString `db:"alternative_e"`
	CorrectAnswer  string         `db:"correct_answer"` // A-E
	Difficulty     string         `db:"difficulty"`     // Easy, Medium, Hard
	ExamYear       int            `db:"exam_year"`      // Copied from the exam for filtering
	Institution    string         `db:"institution"`    // Copied from the exam for filtering
	Active         int            `db:"active"`         // 1 active, 0 deactivated
	CreatedAt      time.Time      `db:"created_at"`
}
