package pdftext

import (
	"math"
	"strings"
	"unicode"

	"exam-ingest/internal/domain"

	"github.com/ledongthuc/pdf"
)

const (
	// wordGapRatio is the horizontal gap, as a fraction of the font size, that separates
	// two glyphs of the same line into different words.
	wordGapRatio = 0.2
	// baselineTolerance is how far two glyphs of one word may drift vertically.
	baselineTolerance = 1.0
)

// groupWords joins the positioned glyphs of a page, in drawing order, into words. A word
// ends at a whitespace glyph, a baseline change or a horizontal gap wider than
// wordGapRatio of the font size. Each word is placed at its first glyph.
func groupWords(glyphs []pdf.Text) []domain.Word {
	var words []domain.Word
	var sb strings.Builder
	var start, prev pdf.Text
	open := false

	flush := func() {
		if open && sb.Len() > 0 {
			words = append(words, domain.Word{Text: sb.String(), Top: start.Y, Left: start.X})
		}
		sb.Reset()
		open = false
	}

	for _, g := range glyphs {
		if strings.TrimFunc(g.S, unicode.IsSpace) == "" {
			flush()
			continue
		}
		if open && !sameWord(prev, g) {
			flush()
		}
		if !open {
			start = g
			open = true
		}
		sb.WriteString(g.S)
		prev = g
	}
	flush()
	return words
}

func sameWord(prev, next pdf.Text) bool {
	if math.Abs(next.Y-prev.Y) > baselineTolerance {
		return false
	}
	size := math.Abs(prev.FontSize)
	if size == 0 {
		size = 1
	}
	gap := next.X - (prev.X + math.Abs(prev.W))
	return gap <= size*wordGapRatio && gap >= -size
}
