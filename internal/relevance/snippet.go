package relevance

import (
	"sort"
	"strings"
	"unicode"

	"github.com/docusense/docusense/internal/outline"
)

// Snippet is a sentence-level fragment extracted from a section's body and
// re-ranked independently. It inherits the section's page number:
// fragment-level page attribution is not attempted.
type Snippet struct {
	Document string  `json:"document"`
	Text     string  `json:"refined_text"`
	Page     int     `json:"page_number"`
	Score    float64 `json:"score"`
}

// ExtractSnippets splits a section's body into sentence-like fragments,
// scores them against the persona + job query with the lexical-similarity
// term only, and returns the top max fragments by descending relevance.
func ExtractSnippets(section outline.Section, persona, job string, max int) []Snippet {
	if section.Body == "" || max <= 0 {
		return nil
	}
	frags := splitFragments(section.Body)
	if len(frags) == 0 {
		return nil
	}

	q := BuildQuery(persona, job)
	scores := LexicalScores(q.Text, frags)

	order := make([]int, len(frags))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if max > len(order) {
		max = len(order)
	}
	out := make([]Snippet, 0, max)
	for _, idx := range order[:max] {
		out = append(out, Snippet{
			Document: section.Document,
			Text:     frags[idx],
			Page:     section.Page,
			Score:    scores[idx],
		})
	}
	return out
}

// splitFragments breaks body text into candidate fragments in one combined
// pass: sentence-ending punctuation (consumed when terminal), newlines, and
// bullet glyphs all end a fragment. Fragments are trimmed, de-bulleted, and
// empty ones dropped.
func splitFragments(text string) []string {
	var frags []string
	var cur strings.Builder

	flush := func() {
		f := strings.TrimSpace(cur.String())
		cur.Reset()
		f = stripBullet(f)
		if f != "" {
			frags = append(frags, f)
		}
	}

	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\n' || r == '\r' || r == '•':
			flush()
		case r == '.' || r == '!' || r == '?':
			// Consume the whole terminator run; it only ends a fragment when
			// followed by whitespace or end of text, so "3.5" stays intact.
			j := i
			for j+1 < len(rs) && isTerminator(rs[j+1]) {
				j++
			}
			if j+1 >= len(rs) || unicode.IsSpace(rs[j+1]) {
				flush()
				i = j
			} else {
				cur.WriteRune(r)
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return frags
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// stripBullet removes a single leading bullet or dash glyph.
func stripBullet(f string) string {
	for _, glyph := range []rune{'•', '-', '*', '●', '◦'} {
		if strings.HasPrefix(f, string(glyph)) {
			return strings.TrimSpace(strings.TrimPrefix(f, string(glyph)))
		}
	}
	return f
}
