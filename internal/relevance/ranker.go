package relevance

import (
	"sort"
	"strings"

	"github.com/docusense/docusense/internal/outline"
)

// personaBoosts maps persona archetypes to the content keywords that earn a
// multiplicative boost when the quality stage is enabled.
var personaBoosts = map[string][]string{
	"researcher": {"methodology", "analysis", "results", "findings", "research", "study"},
	"academic":   {"methodology", "analysis", "results", "findings", "research", "study"},
	"scientist":  {"methodology", "analysis", "results", "findings", "research", "study"},
	"manager":    {"summary", "overview", "conclusion", "recommendations", "strategy"},
	"executive":  {"summary", "overview", "conclusion", "recommendations", "strategy"},
	"leader":     {"summary", "overview", "conclusion", "recommendations", "strategy"},
	"student":    {"introduction", "background", "basics", "overview", "fundamentals"},
	"learner":    {"introduction", "background", "basics", "overview", "fundamentals"},
}

// Ranker orders sections from all documents by relevance to a persona + job
// query. The base ranking is the pure weighted lexical score; the optional
// quality stage layers content-quality multipliers on top and can be
// disabled to keep the base ranking reproducible.
type Ranker struct {
	weights Weights
	quality bool
}

// NewRanker builds a ranker. quality enables the content-quality stage.
func NewRanker(w Weights, quality bool) *Ranker {
	return &Ranker{weights: w, quality: quality}
}

// Rank scores, sorts and annotates sections across all input documents.
// Sections are returned sorted descending by score with 1-based ranks; ties
// keep input order. An empty input returns an empty slice.
func (r *Ranker) Rank(persona, job string, sections []outline.Section) []outline.Section {
	if len(sections) == 0 {
		return []outline.Section{}
	}

	q := BuildQuery(persona, job)
	headings := make([]string, len(sections))
	texts := make([]string, len(sections))
	for i, s := range sections {
		headings[i] = s.Heading
		texts[i] = s.Body
	}

	base := CombinedScores(q, headings, texts, r.weights)
	for i := range sections {
		sections[i].BaseScore = base[i]
		sections[i].Score = base[i]
		if r.quality {
			sections[i].Score = applyQualitySignals(base[i], persona, &sections[i])
		}
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Score > sections[j].Score
	})
	for i := range sections {
		sections[i].Rank = i + 1
		sections[i].Percentile = clamp(sections[i].Score, 0.1, 1.0)
	}
	return sections
}

// applyQualitySignals multiplies the base score by content-quality factors:
// section confidence, a body-length sweet spot, heading level, and persona
// archetype keyword matches.
func applyQualitySignals(score float64, persona string, s *outline.Section) float64 {
	conf := s.Confidence
	if conf == 0 {
		conf = 0.5 // not enriched
	}
	score *= conf

	switch {
	case s.WordCount > 200:
		score *= 1.2
	case s.WordCount > 100:
		score *= 1.1
	case s.WordCount < 25:
		score *= 0.8
	}

	switch s.Level {
	case 1:
		score *= 1.15
	case 3:
		score *= 0.95
	}

	if boosts, ok := personaBoosts[strings.ToLower(strings.TrimSpace(persona))]; ok {
		content := strings.ToLower(s.Heading + " " + s.Body)
		for _, kw := range boosts {
			if strings.Contains(content, kw) {
				score *= 1.25
				break
			}
		}
	}
	return score
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
