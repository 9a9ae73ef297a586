package extract

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/docusense/docusense/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
)

// letterHeight is the fallback page height when the MediaBox is missing.
const letterHeight = 792.0

// PDFExtractor reads per-line layout records (text, bounding box, font size,
// boldness) from a PDF and runs them through the heuristic classifier.
type PDFExtractor struct {
	Classifier *outline.Classifier
}

func (p *PDFExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docusense-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	lines, err := extractPDFLines(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("extract pdf layout: %w", err)
	}

	outline.SortRecords(lines)
	cls := p.Classifier
	if cls == nil {
		cls = outline.NewClassifier()
	}
	title, blocks := cls.Classify(lines)
	return &Document{Name: filename, Title: title, Blocks: blocks}, nil
}

// extractPDFLines reads every page's text rows as LineRecords in top-down
// page coordinates. Pages that fail to decode are skipped, not fatal.
func extractPDFLines(path string) ([]outline.LineRecord, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []outline.LineRecord
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		height := pageHeight(page)
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			if rec, ok := rowToRecord(row, i, height); ok {
				lines = append(lines, rec)
			}
		}
	}
	return lines, nil
}

// rowToRecord merges one text row's runs into a single LineRecord.
func rowToRecord(row *pdflib.Row, page int, pageHeight float64) (outline.LineRecord, bool) {
	runs := make([]pdflib.Text, 0, len(row.Content))
	for _, t := range row.Content {
		if t.S != "" {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 {
		return outline.LineRecord{}, false
	}
	sort.SliceStable(runs, func(a, b int) bool { return runs[a].X < runs[b].X })

	var sb strings.Builder
	var maxSize, baseline float64
	bold := false
	x0 := runs[0].X
	x1 := runs[0].X
	prevEnd := runs[0].X

	for i, t := range runs {
		if i > 0 {
			gap := t.X - prevEnd
			thresh := t.FontSize * 0.2
			if thresh <= 0 {
				thresh = 1.0
			}
			if gap > thresh {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W

		if t.FontSize > maxSize {
			maxSize = t.FontSize
		}
		if t.Y > baseline {
			baseline = t.Y
		}
		if isBoldFont(t.Font) {
			bold = true
		}
		if t.X < x0 {
			x0 = t.X
		}
		if end := t.X + t.W; end > x1 {
			x1 = end
		}
	}

	text := cleanSpace(sb.String())
	if text == "" {
		return outline.LineRecord{}, false
	}

	// PDF coordinates grow upward from the page bottom; convert to top-down
	// so the classifier's gap computation sees reading order.
	return outline.LineRecord{
		Text:     text,
		Page:     page,
		X0:       x0,
		Y0:       pageHeight - (baseline + maxSize),
		X1:       x1,
		Y1:       pageHeight - baseline,
		FontSize: maxSize,
		Bold:     bold,
	}, true
}

// pageHeight resolves the page's MediaBox height, walking up the page tree
// for inherited values.
func pageHeight(p pdflib.Page) float64 {
	v := p.V
	for !v.IsNull() {
		mb := v.Key("MediaBox")
		if mb.Kind() == pdflib.Array && mb.Len() == 4 {
			if h := mb.Index(3).Float64() - mb.Index(1).Float64(); h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return letterHeight
}

func isBoldFont(font string) bool {
	f := strings.ToLower(font)
	return strings.Contains(f, "bold") ||
		strings.Contains(f, "black") ||
		strings.Contains(f, "semibold")
}
