package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/bank-statement-tool/internal/logger"
)

var (
	ErrNotPDF  = errors.New("expected a .pdf file")
	ErrNoPages = errors.New("PDF has no pages")

	// ErrUnreadableText is returned when the extracted text is mostly glyph
	// codes, typically from fonts without a usable encoding.
	ErrUnreadableText = errors.New("PDF text is not readable")
)

// Share of readable runes below which the text is treated as garbage.
const minTextQuality = 0.6

// ExtractFile opens the PDF at path and returns its text, one slice of lines per page.
func ExtractFile(ctx context.Context, path string) ([][]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return ExtractPages(ctx, f, st.Size())
}

// ExtractPages reads a PDF from r and returns the lines of each page in order.
// A page without extractable text contributes an empty slice.
func ExtractPages(ctx context.Context, r io.ReaderAt, size int64) (pages [][]string, err error) {
	// ledongthuc/pdf panics on some malformed documents.
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, ErrNoPages
	}

	log := logger.FromContext(ctx)
	pages = make([][]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}

		lines, method := pageLines(page)
		log.Debug().Int("page", i).Int("lines", len(lines)).Str("method", method).Msg("Extracted page text")
		pages = append(pages, lines)
	}

	if q, ok := textQuality(pages); ok && q <= minTextQuality {
		log.Warn().Float64("quality", q).Msg("Extracted text looks garbled")
		return nil, fmt.Errorf("%w: %.0f%% readable characters", ErrUnreadableText, q*100)
	}
	return pages, nil
}

// textQuality returns the share of runes that are letters, digits, whitespace
// or common statement punctuation. ok is false when there is no text at all.
func textQuality(pages [][]string) (quality float64, ok bool) {
	total, readable := 0, 0
	for _, lines := range pages {
		for _, line := range lines {
			for _, r := range line {
				total++
				if isReadableRune(r) {
					readable++
				}
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(readable) / float64(total), true
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"₹£$€%&@#!?+=*", r)
}

// pageLines tries row grouping first, then coordinate-based reconstruction,
// then the plain text stream.
func pageLines(page pdf.Page) ([]string, string) {
	if lines := linesByRow(page); len(lines) > 0 {
		return lines, "row"
	}
	if lines := linesByContent(page); len(lines) > 0 {
		return lines, "content"
	}
	if lines := linesByPlainText(page); len(lines) > 0 {
		return lines, "plain"
	}
	return nil, "none"
}

func linesByRow(page pdf.Page) []string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil
	}

	var lines []string
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// linesByContent groups text pieces by Y coordinate and orders each row by X.
func linesByContent(page pdf.Page) []string {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	type textItem struct {
		x float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		y := int(math.Round(t.Y))
		rowMap[y] = append(rowMap[y], textItem{x: t.X, s: t.S})
	}

	// PDF Y grows upwards
	ys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	var lines []string
	for _, y := range ys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

		var sb strings.Builder
		var prevX float64
		for j, item := range items {
			if j > 0 && item.x-prevX > 15 {
				sb.WriteString(" ")
			}
			sb.WriteString(item.s)
			prevX = item.x
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func linesByPlainText(page pdf.Page) []string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}

	text, err := page.GetPlainText(fonts)
	if err != nil {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
