// Package pdftext reads PDF documents into positioned words. pdfcpu validates the document
// and ledongthuc/pdf lays out each page's glyphs in page coordinates.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"

	"exam-ingest/internal/domain"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor implements domain.WordExtractor.
type Extractor struct {
	conf *model.Configuration
}

var _ domain.WordExtractor = (*Extractor)(nil)

// NewExtractor returns an extractor that validates documents in relaxed mode. Exam
// PDFs often carry minor structural defects.
func NewExtractor() *Extractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{conf: conf}
}

// Extract returns the words of every page. Any failure to read the document, including a
// panic inside a PDF library, is reported as an EXTRACTION_ERROR and no pages are returned.
func (e *Extractor) Extract(data []byte) (pages []domain.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = domain.NewExtractionError(fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	if len(data) == 0 {
		return nil, domain.NewExtractionError(errors.New("empty document"))
	}

	if _, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf); err != nil {
		return nil, domain.NewExtractionError(fmt.Errorf("pdfcpu read: %w", err))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewExtractionError(fmt.Errorf("pdf reader: %w", err))
	}

	pages = make([]domain.Page, 0, reader.NumPage())
	for pageNr := 1; pageNr <= reader.NumPage(); pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{})
			continue
		}
		pages = append(pages, domain.Page{Words: groupWords(page.Content().Text)})
	}
	return pages, nil
}
