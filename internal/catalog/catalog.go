// Package catalog holds the known exam documents and resolves arbitrary URLs to a catalog entry.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"exam-ingest/internal/domain"
)

const (
	sessionDay1     = "1º Dia"
	sessionDay2     = "2º Dia"
	sessionPhase1   = "1ª Fase"
	inepDownloads   = "https://download.inep.gov.br/enem/provas_e_gabaritos/"
	fuvestUploads   = "https://www.fuvest.br/wp-content/uploads/"
	objetivoUnicamp = "https://www.curso-objetivo.br/vestibular/resolucao-comentada/unicamp/"
)

var knownSources = []domain.CatalogEntry{
	enem(2024, 1, "CD1"),
	enem(2024, 2, "CD1"),
	enem(2023, 1, "CD1"),
	enem(2023, 2, "CD5"),
	enem(2022, 1, "CD1"),
	enem(2022, 2, "CD1"),
	{
		SourceURL:   fuvestUploads + "fuvest2025_primeira_fase_prova_V1.pdf",
		Institution: "FUVEST",
		Year:        2025,
		Session:     sessionPhase1,
		Booklet:     "1ª Fase – V1",
		ExamType:    domain.ExamTypeFUVEST1,
	},
	{
		SourceURL:   fuvestUploads + "fuvest2024_primeira_fase_prova_V.pdf",
		Institution: "FUVEST",
		Year:        2024,
		Session:     sessionPhase1,
		Booklet:     "1ª Fase",
		ExamType:    domain.ExamTypeFUVEST1,
	},
	{
		SourceURL:   fuvestUploads + "fuvest2023_primeira_fase_prova_V.pdf",
		Institution: "FUVEST",
		Year:        2023,
		Session:     sessionPhase1,
		Booklet:     "1ª Fase",
		ExamType:    domain.ExamTypeFUVEST1,
	},
	{
		SourceURL:   objetivoUnicamp + "2025_1fase/unicamp2025_1fase_prova_QZ.pdf",
		Institution: "UNICAMP",
		Year:        2025,
		Session:     sessionPhase1,
		Booklet:     "1ª Fase – QZ",
		ExamType:    domain.ExamTypeUNICAMP1,
	},
	{
		SourceURL:   objetivoUnicamp + "2024_1fase/unicamp2024_1fase_prova_QY.pdf",
		Institution: "UNICAMP",
		Year:        2024,
		Session:     sessionPhase1,
		Booklet:     "1ª Fase – QY",
		ExamType:    domain.ExamTypeUNICAMP1,
	},
}

// enem builds the INEP entry for one day of a year's printed booklet and its answer key.
func enem(year, day int, booklet string) domain.CatalogEntry {
	e := domain.CatalogEntry{
		SourceURL:    fmt.Sprintf("%s%d_PV_impresso_D%d_%s.pdf", inepDownloads, year, day, booklet),
		AnswerKeyURL: fmt.Sprintf("%s%d_GB_impresso_D%d.pdf", inepDownloads, year, day),
		Institution:  "ENEM",
		Year:         year,
		Session:      sessionDay1,
		Booklet:      fmt.Sprintf("Dia %d – %s", day, booklet),
		ExamType:     domain.ExamTypeENEMDay1,
	}
	if day == 2 {
		e.Session = sessionDay2
		e.ExamType = domain.ExamTypeENEMDay2
	}
	return e
}

var yearPattern = regexp.MustCompile(`20\d{2}`)

// KnownSources returns a copy of the catalog in import order.
func KnownSources() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, len(knownSources))
	copy(out, knownSources)
	return out
}

// Lookup finds the catalog entry whose source URL equals url, ignoring case.
func Lookup(url string) (domain.CatalogEntry, bool) {
	for _, e := range knownSources {
		if strings.EqualFold(e.SourceURL, url) {
			return e, true
		}
	}
	return domain.CatalogEntry{}, false
}

// Infer builds a best-effort entry from markers in url. fallbackYear is used when the URL
// carries no year.
func Infer(url string, fallbackYear int) domain.CatalogEntry {
	entry := domain.CatalogEntry{
		SourceURL:   url,
		Institution: domain.UnknownInstitution,
		Year:        fallbackYear,
		Session:     sessionPhase1,
		ExamType:    domain.ExamTypeUnknown,
	}

	if m := yearPattern.FindString(url); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			entry.Year = y
		}
	}

	switch {
	case strings.Contains(url, "inep.gov.br"):
		entry.Institution = "ENEM"
		entry.ExamType = domain.ExamTypeENEMDay1
		entry.Session = sessionDay1
		if strings.Contains(url, "D2") {
			entry.ExamType = domain.ExamTypeENEMDay2
			entry.Session = sessionDay2
		}
	case strings.Contains(url, "fuvest.br"):
		entry.Institution = "FUVEST"
		entry.ExamType = domain.ExamTypeFUVEST1
	case strings.Contains(url, "unicamp"), strings.Contains(url, "objetivo.br"):
		entry.Institution = "UNICAMP"
		entry.ExamType = domain.ExamTypeUNICAMP1
	}
	return entry
}

// Resolve returns the catalog entry for url, inferring one when the URL is not catalogued.
func Resolve(url string) domain.CatalogEntry {
	if e, ok := Lookup(url); ok {
		return e
	}
	return Infer(url, time.Now().Year())
}
