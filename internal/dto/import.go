package dto

import "exam-ingest/internal/domain"

// ImportURLRequest represents the request body for importing one exam document
type ImportURLRequest struct {
	URL          string `json:"url"`
	AnswerKeyURL string `json:"answer_key_url,omitempty"`
}

// ImportListRequest represents the request body for importing several documents
type ImportListRequest struct {
	URLs []string `json:"urls"`
}

// ImportResultResponse represents the outcome of one import
type ImportResultResponse struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message"`
	SourceURL   string                   `json:"source_url"`
	ErrorCode   string                   `json:"error_code,omitempty"`
	Saved       int                      `json:"saved"`
	Duplicates  int                      `json:"duplicates"`
	ParseErrors int                      `json:"parse_errors"`
	Warnings    []string                 `json:"warnings"`
	Questions   []*domain.ParsedQuestion `json:"questions,omitempty"`
}

// BatchImportResponse represents the outcome of a list or catalog import
type BatchImportResponse struct {
	Success    bool                   `json:"success"`
	TotalURLs  int                    `json:"total_urls"`
	TotalSaved int                    `json:"total_saved"`
	Succeeded  int                    `json:"succeeded"`
	Failed     int                    `json:"failed"`
	Results    []ImportResultResponse `json:"results"`
}

// SourcesResponse lists the catalogued exam documents
type SourcesResponse struct {
	Total   int                   `json:"total"`
	Sources []domain.CatalogEntry `json:"sources"`
}

// SubjectStatsResponse lists active question totals per subject
type SubjectStatsResponse struct {
	Total    int                   `json:"total"`
	Subjects []domain.SubjectCount `json:"subjects"`
}

// DeactivateResponse confirms a soft delete
type DeactivateResponse struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// HealthResponse reports the state of the service dependencies
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// NewImportResultResponse converts an import result. Parsed questions are only included
// when withQuestions is set.
func NewImportResultResponse(r *domain.ImportResult, withQuestions bool) ImportResultResponse {
	resp := ImportResultResponse{
		Success:     r.Success,
		Message:     r.Message,
		SourceURL:   r.SourceURL,
		ErrorCode:   string(r.ErrorCode),
		Saved:       r.Saved,
		Duplicates:  r.Duplicates,
		ParseErrors: r.ParseErrors,
		Warnings:    r.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if withQuestions {
		resp.Questions = r.Questions
	}
	return resp
}

// NewBatchImportResponse converts a sequence of import results.
func NewBatchImportResponse(results []*domain.ImportResult) BatchImportResponse {
	resp := BatchImportResponse{Success: true, Results: make([]ImportResultResponse, 0, len(results))}
	for _, r := range results {
		resp.TotalURLs++
		resp.TotalSaved += r.Saved
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, NewImportResultResponse(r, false))
	}
	return resp
}
