package extract

import (
	"bufio"
	"io"

	"github.com/docusense/docusense/internal/outline"
)

// TextExtractor handles plain text files. It has no markup to lean on, so
// lines are turned into synthetic layout records (blank lines become vertical
// gaps) and the heuristic classifier decides which lines are headings.
type TextExtractor struct {
	Classifier *outline.Classifier
}

func (p *TextExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	const (
		lineHeight = synthBodySize * synthLineHeight
		blankGap   = 20.0
	)

	var lines []outline.LineRecord
	y := 0.0
	gap := blankGap // the first line counts as preceded by open space
	for scanner.Scan() {
		text := cleanSpace(scanner.Text())
		if text == "" {
			gap = blankGap
			continue
		}
		top := y + gap
		lines = append(lines, outline.LineRecord{
			Text:     text,
			Page:     1,
			X0:       0,
			Y0:       top,
			X1:       540,
			Y1:       top + lineHeight,
			FontSize: synthBodySize,
		})
		y = top + lineHeight
		gap = synthBodyGap
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cls := p.Classifier
	if cls == nil {
		cls = outline.NewClassifier()
	}
	title, blocks := cls.Classify(lines)
	return &Document{Name: filename, Title: title, Blocks: blocks}, nil
}
