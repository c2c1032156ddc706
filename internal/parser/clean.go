package parser

import (
	"regexp"
	"strings"
)

var (
	lineEndingPattern  = regexp.MustCompile(`\r\n|\r`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern    = regexp.MustCompile(`[ \t]{2,}`)
	headerTokenPattern = regexp.MustCompile(`\b(?:ENEM|FUVEST|UNICAMP)[ \t]*\d{4}\b`)
	prosePattern       = regexp.MustCompile(`[,;][ \t]+\p{Ll}`)
	pageMarkerPattern  = regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(PageMarker) + `[ \t]*(?:\n|$)`)
)

// Clean normalizes whitespace and removes page headers and page markers from a body or
// alternative text.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = lineEndingPattern.ReplaceAllString(text, "\n")
	text = pageMarkerPattern.ReplaceAllString(text, "")
	text = stripPageHeaders(text)
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// maxHeaderLead is how many words may precede the institution token on a header line.
const maxHeaderLead = 2

// stripPageHeaders drops running page headers such as "ENEM 2023 - Caderno Azul". A line
// counts as a header only when the institution and year open it (after at most
// maxHeaderLead words) and it does not read as prose, so body sentences that cite an exam
// are kept.
func stripPageHeaders(text string) string {
	if !headerTokenPattern.MatchString(text) {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !isPageHeader(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func isPageHeader(line string) bool {
	loc := headerTokenPattern.FindStringIndex(line)
	if loc == nil {
		return false
	}
	if len(strings.Fields(line[:loc[0]])) > maxHeaderLead {
		return false
	}
	return !prosePattern.MatchString(line)
}
