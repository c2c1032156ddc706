package domain

// CatalogEntry describes one known exam document and, optionally, its answer key.
type CatalogEntry struct {
	SourceURL    string   `json:"url"`
	AnswerKeyURL string   `json:"answer_key_url,omitempty"`
	Institution  string   `json:"institution"`
	Year         int      `json:"year"`
	Session      string   `json:"session"`
	Booklet      string   `json:"booklet"`
	ExamType     ExamType `json:"exam_type"`
}
