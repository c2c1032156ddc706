package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"exam-ingest/internal/domain"
)

// minScannedBody is the body length a line-scanned question needs before it is kept.
const minScannedBody = 15

var (
	lineQuestionPattern    = regexp.MustCompile(`^[ \t]*(\d{1,3})[ \t]*[.)][ \t]+(\S.*)$`)
	lineAlternativePattern = regexp.MustCompile(`^[ \t]*([A-Ea-e])[ \t]*[).\-][ \t]+(.+)$`)
)

type scanState int

const (
	scanNone scanState = iota
	scanBody
	scanAlternative
)

// lineScanner accumulates one question at a time while walking the text line by line.
type lineScanner struct {
	state   scanState
	current *domain.ParsedQuestion
	body    strings.Builder
	letter  int
	alts    [5]strings.Builder
	out     []*domain.ParsedQuestion
}

// LineScan is the last-resort segmentation: numbered lines open questions and lettered lines
// open alternatives. Questions with fewer than two alternatives are returned with ParseOK
// unset so they are reported as parse errors.
func LineScan(text string) []*domain.ParsedQuestion {
	s := &lineScanner{}
	for _, line := range strings.Split(text, "\n") {
		s.feed(line)
	}
	s.flush()
	return s.out
}

func (s *lineScanner) feed(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || isBoilerplate(trimmed) {
		return
	}

	if m := lineQuestionPattern.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= minQuestionNumber && n <= maxQuestionNumber {
			s.flush()
			s.current = &domain.ParsedQuestion{Number: n}
			s.body.WriteString(strings.TrimSpace(m[2]))
			s.state = scanBody
			return
		}
	}

	if s.state == scanNone {
		return
	}

	if m := lineAlternativePattern.FindStringSubmatch(line); m != nil {
		s.letter = domain.LetterIndex(m[1])
		s.alts[s.letter].Reset()
		s.alts[s.letter].WriteString(strings.TrimSpace(m[2]))
		s.state = scanAlternative
		return
	}

	switch s.state {
	case scanAlternative:
		s.alts[s.letter].WriteString(" " + trimmed)
	case scanBody:
		s.body.WriteString("\n" + trimmed)
	}
}

func (s *lineScanner) flush() {
	defer s.reset()
	if s.current == nil {
		return
	}
	body := Clean(s.body.String())
	if utf8.RuneCountInString(body) <= minScannedBody {
		return
	}

	q := s.current
	q.Body = body
	for i := range s.alts {
		q.Alternatives[i] = Clean(s.alts[i].String())
	}
	q.ParseOK = q.FilledAlternatives() >= 2
	if !q.ParseOK {
		q.ErrorNote = "fewer than two alternatives found"
	}
	s.out = append(s.out, q)
}

func (s *lineScanner) reset() {
	s.state = scanNone
	s.current = nil
	s.body.Reset()
	s.letter = 0
	for i := range s.alts {
		s.alts[i].Reset()
	}
}

func isBoilerplate(line string) bool {
	return line == PageMarker || isPageHeader(line)
}
