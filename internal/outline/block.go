package outline

import (
	"math"
	"sort"
	"unicode"
)

// Tag is the structural role assigned to a line.
type Tag string

const (
	TagBody    Tag = "BODY"
	TagHeading Tag = "HEADING"
	TagTitle   Tag = "TITLE"
)

// LineRecord is one visually distinct line of text as emitted by a document
// extractor. Coordinates are top-down page coordinates: Y0 is the top edge,
// Y1 the bottom edge, so Y grows toward the bottom of the page.
type LineRecord struct {
	Text     string
	Page     int // 1-based
	X0, Y0   float64
	X1, Y1   float64
	FontSize float64
	Bold     bool
}

// TaggedBlock is a LineRecord annotated with layout features and a structural
// role. Blocks are created once by Classify and not mutated afterward.
type TaggedBlock struct {
	LineRecord

	// CapsRatio is the fraction of alphabetic characters that are uppercase.
	CapsRatio float64

	// FontRank is a document-local dense ranking of distinct font sizes
	// (rounded to 2 decimals); 0 is the largest size in the document.
	FontRank int

	// Score is the heading heuristic score that produced the tag.
	Score float64

	Tag Tag
}

// SortRecords orders records page-major, top-to-bottom, left-to-right. The
// classifier assumes this order; extractors that cannot guarantee it should
// call SortRecords first.
func SortRecords(lines []LineRecord) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Page != lines[j].Page {
			return lines[i].Page < lines[j].Page
		}
		if lines[i].Y0 != lines[j].Y0 {
			return lines[i].Y0 < lines[j].Y0
		}
		return lines[i].X0 < lines[j].X0
	})
}

// CapsRatio returns the fraction of letters in t that are uppercase, or 0 if
// t contains no letters.
func CapsRatio(t string) float64 {
	letters, upper := 0, 0
	for _, r := range t {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

// roundSize rounds a font size to 2 decimals so that near-identical sizes
// collapse into one rank.
func roundSize(sz float64) float64 {
	return math.Round(sz*100) / 100
}

// fontRanks builds the document-local dense ranking of distinct font sizes,
// largest size first. A missing (zero) size participates and naturally ends
// up with the last rank.
func fontRanks(lines []LineRecord) map[float64]int {
	seen := make(map[float64]struct{})
	for _, l := range lines {
		seen[roundSize(l.FontSize)] = struct{}{}
	}
	sizes := make([]float64, 0, len(seen))
	for sz := range seen {
		sizes = append(sizes, sz)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	ranks := make(map[float64]int, len(sizes))
	for i, sz := range sizes {
		ranks[sz] = i
	}
	return ranks
}
