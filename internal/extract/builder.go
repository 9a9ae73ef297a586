package extract

import (
	"sort"
	"strings"

	"github.com/docusense/docusense/internal/outline"
)

// Synthetic layout constants for structured formats. The sizes only need to
// be distinct and descending so that font ranks come out dense and headings
// outrank body text, mirroring what a real page layout would produce.
const (
	synthBodySize   = 11.0
	synthLineHeight = 1.2
	synthHeadingGap = 24.0
	synthBodyGap    = 4.0
)

var synthHeadingSizes = []float64{24, 18, 15, 13.5, 12.5, 12}

func synthHeadingSize(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > len(synthHeadingSizes) {
		level = len(synthHeadingSizes)
	}
	return synthHeadingSizes[level-1]
}

// blockBuilder accumulates pre-tagged blocks for formats whose markup already
// names the heading roles. finish() assigns the document-local dense font
// ranks the same way the classifier would.
type blockBuilder struct {
	blocks []outline.TaggedBlock
	title  string
	y      float64
}

func (b *blockBuilder) heading(level int, text string) {
	text = cleanSpace(text)
	if text == "" {
		return
	}
	b.add(text, synthHeadingSize(level), true, synthHeadingGap, outline.TagHeading)
}

func (b *blockBuilder) body(text string) {
	text = cleanSpace(text)
	if text == "" {
		return
	}
	// Markup body blocks may span several lines; keep them as one record,
	// the section builder joins text anyway.
	b.add(text, synthBodySize, false, synthBodyGap, outline.TagBody)
}

func (b *blockBuilder) setTitle(text string) {
	b.title = cleanSpace(text)
}

func (b *blockBuilder) add(text string, size float64, bold bool, gap float64, tag outline.Tag) {
	top := b.y + gap
	bottom := top + size*synthLineHeight
	b.y = bottom
	b.blocks = append(b.blocks, outline.TaggedBlock{
		LineRecord: outline.LineRecord{
			Text:     text,
			Page:     1,
			X0:       72,
			Y0:       top,
			X1:       540,
			Y1:       bottom,
			FontSize: size,
			Bold:     bold,
		},
		CapsRatio: outline.CapsRatio(text),
		Tag:       tag,
	})
}

// finish assigns dense font ranks and returns the completed document.
func (b *blockBuilder) finish(name string) *Document {
	sizes := make(map[float64]struct{})
	for _, blk := range b.blocks {
		sizes[blk.FontSize] = struct{}{}
	}
	distinct := make([]float64, 0, len(sizes))
	for sz := range sizes {
		distinct = append(distinct, sz)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(distinct)))
	ranks := make(map[float64]int, len(distinct))
	for i, sz := range distinct {
		ranks[sz] = i
	}
	for i := range b.blocks {
		b.blocks[i].FontRank = ranks[b.blocks[i].FontSize]
	}

	doc := &Document{Name: name, Blocks: b.blocks}
	if b.title != "" {
		doc.Title = &outline.TaggedBlock{
			LineRecord: outline.LineRecord{Text: b.title, Page: 1, FontSize: synthHeadingSizes[0], Bold: true},
			CapsRatio:  outline.CapsRatio(b.title),
			Tag:        outline.TagTitle,
		}
	}
	return doc
}

// cleanSpace collapses runs of whitespace into single spaces.
func cleanSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
