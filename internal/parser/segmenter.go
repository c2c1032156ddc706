package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"exam-ingest/internal/domain"
)

const (
	minQuestionNumber = 1
	maxQuestionNumber = 200

	// minBodyLength is the shortest cleaned body accepted as a question.
	minBodyLength = 10
	// maxBlockRunes bounds a raw block so the text after the last question cannot grow it without limit.
	maxBlockRunes = 12000

	minPrimaryMarkers = 3
	minAccepted       = 5
)

var (
	primaryMarkerPattern     = regexp.MustCompile(`(?im)^[ \t]*(?:QUEST[ÃA]O[ \t]+|Q\.[ \t]*)(\d{1,3})`)
	numberedMarkerPattern    = regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})[ \t]*[.)]`)
	alternativeMarkerPattern = regexp.MustCompile(`(?im)^[ \t]*[(\[]?[ \t]*([A-E])[ \t]*[)\].:\-]`)
)

type rawBlock struct {
	number int
	text   string
}

// Segment splits exam text into question candidates, ordered by number with one entry per
// number. Questions whose number falls in a fixed range of the exam type get that range's
// subject; the others are left for Classify. When fewer than minAccepted blocks parse, the
// line scan is tried and its result is used only if it yields more questions than the blocks.
func Segment(text string, t domain.ExamType) []*domain.ParsedQuestion {
	text = lineEndingPattern.ReplaceAllString(text, "\n")

	blocks := splitBlocks(text, primaryMarkerPattern)
	if len(blocks) < minPrimaryMarkers {
		blocks = splitBlocks(text, numberedMarkerPattern)
	}

	var questions []*domain.ParsedQuestion
	for _, b := range blocks {
		if q := parseBlock(b); q != nil {
			questions = append(questions, q)
		}
	}

	if len(questions) < minAccepted {
		if scanned := LineScan(text); len(scanned) > len(questions) {
			questions = scanned
		}
	}

	return finalize(questions, t)
}

// splitBlocks cuts text at every marker match. Each block runs from the end of its marker to
// the start of the next one.
func splitBlocks(text string, marker *regexp.Regexp) []rawBlock {
	locs := marker.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]rawBlock, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil || n < minQuestionNumber || n > maxQuestionNumber {
			continue
		}
		blocks = append(blocks, rawBlock{number: n, text: truncateRunes(text[loc[1]:end], maxBlockRunes)})
	}
	return blocks
}

// parseBlock extracts the body and alternatives of one block, or returns nil when the block
// does not look like a question.
func parseBlock(b rawBlock) *domain.ParsedQuestion {
	locs := alternativeMarkerPattern.FindAllStringSubmatchIndex(b.text, -1)
	if len(locs) < 2 {
		return nil
	}

	body := Clean(b.text[:locs[0][0]])
	if utf8.RuneCountInString(body) < minBodyLength {
		return nil
	}

	q := &domain.ParsedQuestion{Number: b.number, Body: body, ParseOK: true}
	for i, loc := range locs {
		letter := strings.ToUpper(b.text[loc[2]:loc[3]])
		if q.Alternative(letter) != "" {
			continue
		}
		var raw string
		if i+1 < len(locs) {
			raw = b.text[loc[1]:locs[i+1][0]]
		} else {
			raw = b.text[loc[1]:]
			if cut := strings.Index(raw, PageMarker); cut >= 0 {
				raw = raw[:cut]
			}
		}
		q.SetAlternative(letter, Clean(raw))
	}

	if q.FilledAlternatives() < 2 {
		return nil
	}
	return q
}

func finalize(questions []*domain.ParsedQuestion, t domain.ExamType) []*domain.ParsedQuestion {
	seen := make(map[int]bool, len(questions))
	out := make([]*domain.ParsedQuestion, 0, len(questions))
	for _, q := range questions {
		if seen[q.Number] {
			continue
		}
		seen[q.Number] = true
		if s := SubjectByRange(q.Number, t); s != "" {
			q.Subject = s
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
