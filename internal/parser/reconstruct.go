// Package parser turns reconstructed exam text into question records.
// Everything here is pure: no I/O, no logging, no shared state.
package parser

import (
	"math"
	"sort"
	"strings"

	"exam-ingest/internal/domain"
)

// LineGap is the vertical distance above which two words are placed on different lines.
const LineGap = 4.0

// PageMarker is appended after every page of reconstructed text.
const PageMarker = "--- PÁGINA ---"

// Reconstruct linearizes positioned words into reading-order text, one page after another.
func Reconstruct(pages []domain.Page) string {
	var sb strings.Builder
	for _, page := range pages {
		words := make([]domain.Word, len(page.Words))
		copy(words, page.Words)
		sort.SliceStable(words, func(i, j int) bool {
			if words[i].Top != words[j].Top {
				return words[i].Top > words[j].Top
			}
			return words[i].Left < words[j].Left
		})

		lastTop := math.NaN()
		for _, w := range words {
			switch {
			case math.IsNaN(lastTop):
			case math.Abs(w.Top-lastTop) > LineGap:
				sb.WriteByte('\n')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(w.Text)
			lastTop = w.Top
		}
		sb.WriteString("\n" + PageMarker + "\n")
	}
	return sb.String()
}
