package pdftext

import (
	"fmt"
	"strings"
	"testing"

	"exam-ingest/internal/domain"
	"exam-ingest/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helveticaWidths gives every printable ASCII glyph a 500/1000 em advance.
var helveticaWidths = strings.TrimSpace(strings.Repeat("500 ", 95))

// buildTextPDF writes a one-page PDF whose content stream is stream.
func buildTextPDF(stream string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	fmt.Fprintf(&b, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream)

	offsets[5] = b.Len()
	fmt.Fprintf(&b, "5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] >>\nendobj\n", helveticaWidths)

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return []byte(b.String())
}

func texts(words []domain.Word) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Text)
	}
	return out
}

func TestExtractor_Extract(t *testing.T) {
	data := buildTextPDF("BT\n/F1 12 Tf\n72 720 Td\n(QUESTAO 1) Tj\n0 -20 Td\n(Enunciado) Tj\nET")

	pages, err := NewExtractor().Extract(data)

	require.NoError(t, err)
	require.Len(t, pages, 1)
	words := pages[0].Words
	assert.Equal(t, []string{"QUESTAO", "1", "Enunciado"}, texts(words))
	assert.InDelta(t, 720, words[0].Top, 0.001)
	assert.InDelta(t, 72, words[0].Left, 0.001)
	assert.InDelta(t, 720, words[1].Top, 0.001)
	assert.Greater(t, words[1].Left, words[0].Left)
	assert.InDelta(t, 700, words[2].Top, 0.001)
}

func TestExtractor_PageCoordinates(t *testing.T) {
	t.Run("y-down transformation keeps reading order", func(t *testing.T) {
		data := buildTextPDF("1 0 0 -1 0 792 cm\nBT\n/F1 12 Tf\n72 100 Td\n(QUESTAO) Tj\n0 20 Td\n(Enunciado) Tj\nET")

		pages, err := NewExtractor().Extract(data)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		require.Len(t, pages[0].Words, 2)
		assert.InDelta(t, 692, pages[0].Words[0].Top, 0.001)
		assert.InDelta(t, 672, pages[0].Words[1].Top, 0.001)
		assert.Equal(t, "QUESTAO\nEnunciado\n"+parser.PageMarker+"\n", parser.Reconstruct(pages))
	})

	t.Run("scaled text stays on one line", func(t *testing.T) {
		data := buildTextPDF("q\n0.3 0 0 0.3 0 0 cm\nBT\n/F1 40 Tf\n100 1000 Td\n(Primeira) Tj\n400 -10 Td\n(linha) Tj\nET\nQ")

		pages, err := NewExtractor().Extract(data)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		words := pages[0].Words
		require.Len(t, words, 2)
		assert.InDelta(t, 300, words[0].Top, 0.001)
		assert.InDelta(t, 297, words[1].Top, 0.001)
		assert.InDelta(t, 30, words[0].Left, 0.001)
		assert.Equal(t, "Primeira linha\n"+parser.PageMarker+"\n", parser.Reconstruct(pages))
	})
}

func TestExtractor_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("<html>404 not found</html>")},
		{"truncated", buildTextPDF("BT (x) Tj ET")[:40]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := NewExtractor().Extract(tt.data)
			require.Error(t, err)
			assert.Nil(t, pages)
			assert.Equal(t, domain.ErrExtraction, domain.CodeOf(err))
		})
	}
}
