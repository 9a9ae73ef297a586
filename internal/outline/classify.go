// Package outline turns raw per-line layout records into tagged blocks
// (TITLE / HEADING / BODY) and assembles them into logical sections.
package outline

import (
	"regexp"
	"strings"
	"unicode"
)

// Config holds the heading heuristic thresholds. The defaults are the tuned
// values validated against representative PDFs.
type Config struct {
	// MinHeadingScore is the score a line must reach to be tagged HEADING.
	MinHeadingScore float64

	// MaxHeadingWords is the word count at or below which a line earns the
	// short-line bonus.
	MaxHeadingWords int

	// UppercaseRatioMin is the caps-ratio at or above which a line earns the
	// uppercase bonus.
	UppercaseRatioMin float64

	// GapThreshold is the vertical gap (in page units) above which a line
	// earns the isolated-line bonus.
	GapThreshold float64

	// TitleCapsRatio is the caps-ratio a page-1 line must exceed to be a
	// title candidate.
	TitleCapsRatio float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		MinHeadingScore:   2.5,
		MaxHeadingWords:   8,
		UppercaseRatioMin: 0.6,
		GapThreshold:      8,
		TitleCapsRatio:    0.7,
	}
}

// pageBreakGap is the sentinel gap used when the previous line is on another
// page; a page break always resets spacing context.
const pageBreakGap = 9999

var (
	numberedRE = regexp.MustCompile(`^\d+[.)]\s+`)

	punctSet = map[rune]struct{}{
		',': {}, '.': {}, ';': {}, ':': {}, '!': {}, '?': {},
		'(': {}, ')': {}, '[': {}, ']': {}, '{': {}, '}': {},
		'\'': {}, '"': {},
	}

	continuationPrefixes = []string{"in ", "on ", "at ", "for ", "of ", "to ", "by "}
)

// Classifier tags lines as TITLE, HEADING or BODY using font and geometric
// heuristics.
type Classifier struct {
	cfg Config
}

// NewClassifier returns a classifier with the default tuning.
func NewClassifier() *Classifier {
	return &Classifier{cfg: DefaultConfig()}
}

// NewClassifierWithConfig returns a classifier with custom thresholds.
func NewClassifierWithConfig(cfg Config) *Classifier {
	if cfg.MinHeadingScore == 0 {
		cfg.MinHeadingScore = 2.5
	}
	if cfg.MaxHeadingWords == 0 {
		cfg.MaxHeadingWords = 8
	}
	if cfg.UppercaseRatioMin == 0 {
		cfg.UppercaseRatioMin = 0.6
	}
	if cfg.GapThreshold == 0 {
		cfg.GapThreshold = 8
	}
	if cfg.TitleCapsRatio == 0 {
		cfg.TitleCapsRatio = 0.7
	}
	return &Classifier{cfg: cfg}
}

// Classify tags each line and detects an optional document title. Input must
// be ordered page-major, top-to-bottom (see SortRecords). The output block
// slice has the same length and order as the input; an empty input yields
// (nil, nil). Classification is deterministic and never fails on malformed
// geometry.
func (c *Classifier) Classify(lines []LineRecord) (*TaggedBlock, []TaggedBlock) {
	if len(lines) == 0 {
		return nil, nil
	}

	ranks := fontRanks(lines)

	blocks := make([]TaggedBlock, len(lines))
	titleIdx := -1
	for i, l := range lines {
		b := TaggedBlock{
			LineRecord: l,
			CapsRatio:  CapsRatio(l.Text),
			FontRank:   ranks[roundSize(l.FontSize)],
			Tag:        TagBody,
		}

		gapAbove := float64(pageBreakGap)
		if i > 0 && lines[i-1].Page == l.Page {
			gapAbove = l.Y0 - lines[i-1].Y1
		}

		b.Score = c.scoreLine(l.Text, b.CapsRatio, b.FontRank, l.Bold, gapAbove)
		if b.Score >= c.cfg.MinHeadingScore {
			b.Tag = TagHeading
		}

		// Title candidate: page-1 line with high caps-ratio; the one with
		// the largest font size wins.
		if l.Page == 1 && b.CapsRatio > c.cfg.TitleCapsRatio {
			if titleIdx < 0 || l.FontSize > blocks[titleIdx].FontSize {
				titleIdx = i
			}
		}

		blocks[i] = b
	}

	if titleIdx < 0 {
		return nil, blocks
	}
	blocks[titleIdx].Tag = TagTitle
	title := blocks[titleIdx]
	return &title, blocks
}

// scoreLine computes the weighted heading heuristic for one line.
func (c *Classifier) scoreLine(text string, caps float64, fontRank int, bold bool, gapAbove float64) float64 {
	if isBullet(text) {
		return -5.0
	}

	s := 0.0
	if first := firstRune(text); first != 0 && unicode.IsLower(first) {
		s -= 2.0
	}
	lower := strings.ToLower(text)
	for _, p := range continuationPrefixes {
		if strings.HasPrefix(lower, p) {
			s -= 1.5
			break
		}
	}

	switch fontRank {
	case 0:
		s += 1.0
	case 1:
		s += 0.75
	case 2:
		s += 0.5
	}
	if bold {
		s += 0.25
	}

	words := len(strings.Fields(text))
	if words <= c.cfg.MaxHeadingWords {
		s += 1.5
	}
	if words <= 3 {
		s += 0.5
	}

	if caps >= c.cfg.UppercaseRatioMin {
		s += 1.0
	} else if caps < 0.2 {
		s -= 0.5
	}

	punct := 0
	for _, r := range text {
		if _, ok := punctSet[r]; ok {
			punct++
		}
	}
	if punct >= 3 {
		s -= 0.5
	}

	if gapAbove > c.cfg.GapThreshold {
		s += 0.5
	}
	return s
}

// isBullet reports whether a line is a bullet or numbered list item. Such
// lines are never headings. A bare "o" bullet only counts when followed by
// whitespace, so words starting with "o" are not swallowed.
func isBullet(text string) bool {
	t := strings.TrimLeft(text, " \t")
	if t == "" {
		return false
	}
	switch firstRune(t) {
	case '•', '-', '–', '*', '·', '●', '◦':
		return true
	case 'o':
		if len(t) > 1 && (t[1] == ' ' || t[1] == '\t') {
			return true
		}
	}
	return numberedRE.MatchString(t)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
