package validation

import (
	"fmt"
	"net/url"
	"strings"

	"exam-ingest/internal/domain"

	"github.com/oklog/ulid/v2"
)

// MaxBatchURLs bounds a single list import; each URL costs at least one download.
const MaxBatchURLs = 50

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateImportURLRequest validates the single-document import request
func (v *Validator) ValidateImportURLRequest(docURL, keyURL string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(docURL) == "" {
		errors = append(errors, domain.NewMissingFieldError("url"))
	} else if !isValidDocumentURL(docURL) {
		errors = append(errors, domain.NewInvalidFormatError("url", docURL))
	}

	if strings.TrimSpace(keyURL) != "" && !isValidDocumentURL(keyURL) {
		errors = append(errors, domain.NewInvalidFormatError("answer_key_url", keyURL))
	}

	return errors
}

// ValidateImportListRequest validates the multi-URL import request
func (v *Validator) ValidateImportListRequest(urls []string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(urls) == 0 {
		errors = append(errors, domain.NewMissingFieldError("urls"))
		return errors
	}
	if len(urls) > MaxBatchURLs {
		errors = append(errors, domain.NewOutOfRangeError("urls", len(urls), 1, MaxBatchURLs))
		return errors
	}

	for i, u := range urls {
		if !isValidDocumentURL(u) {
			errors = append(errors, domain.NewInvalidFormatError(fmt.Sprintf("urls[%d]", i), u))
		}
	}

	return errors
}

// ValidateQuestionID validates a stored question identifier
func (v *Validator) ValidateQuestionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if _, err := ulid.ParseStrict(id); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// isValidDocumentURL accepts absolute http and https URLs only
func isValidDocumentURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
