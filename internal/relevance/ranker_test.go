package relevance

import (
	"strings"
	"testing"

	"github.com/docusense/docusense/internal/outline"
)

func TestRank_MethodologyFirst(t *testing.T) {
	sections := []outline.Section{
		{
			Document:  "paper.pdf",
			Heading:   "Acknowledgments",
			Body:      "Thanks to our sponsors.",
			WordCount: 4,
		},
		{
			Document:  "paper.pdf",
			Heading:   "Methodology",
			Body:      "We used a randomized trial design with 200 participants.",
			WordCount: 9,
		},
	}

	r := NewRanker(DefaultWeights(), false)
	ranked := r.Rank("Researcher", "find methodology", sections)

	if ranked[0].Heading != "Methodology" {
		t.Errorf("rank 1 is %q, want Methodology", ranked[0].Heading)
	}
	if ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Errorf("ranks %d, %d, want 1, 2", ranked[0].Rank, ranked[1].Rank)
	}
	if ranked[0].Score < ranked[1].Score {
		t.Errorf("scores not descending: %v", []float64{ranked[0].Score, ranked[1].Score})
	}
}

func TestRank_EmptyInput(t *testing.T) {
	r := NewRanker(DefaultWeights(), true)
	ranked := r.Rank("Analyst", "review contracts", nil)
	if ranked == nil || len(ranked) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", ranked)
	}
}

func TestRank_TotalOrderAndRanks(t *testing.T) {
	var sections []outline.Section
	bodies := []string{
		"solar panel installation on rooftops",
		"maintenance schedule for solar systems",
		"unrelated gardening advice",
		"",
		"panel wiring diagrams and installation notes",
	}
	for i, b := range bodies {
		sections = append(sections, outline.Section{
			Document:  "guide.pdf",
			Heading:   "Section",
			Body:      b,
			WordCount: len(strings.Fields(b)),
			Page:      i + 1,
		})
	}

	r := NewRanker(DefaultWeights(), false)
	ranked := r.Rank("Installer", "install solar panels", sections)

	for i := range ranked {
		if ranked[i].Rank != i+1 {
			t.Errorf("rank at %d is %d, want %d", i, ranked[i].Rank, i+1)
		}
		if i > 0 && ranked[i-1].Score < ranked[i].Score {
			t.Errorf("scores not descending at %d: %.4f < %.4f",
				i, ranked[i-1].Score, ranked[i].Score)
		}
	}
}

func TestRank_EmptyBodyDoesNotPanic(t *testing.T) {
	sections := []outline.Section{
		{Document: "a.pdf", Heading: "Empty Section", Body: ""},
	}
	r := NewRanker(DefaultWeights(), true)
	ranked := r.Rank("Reader", "anything at all", sections)
	if len(ranked) != 1 || ranked[0].Rank != 1 {
		t.Fatalf("expected 1 ranked section, got %+v", ranked)
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	sections := []outline.Section{
		{Document: "a.pdf", Heading: "Alpha", Body: "identical text"},
		{Document: "b.pdf", Heading: "Alpha", Body: "identical text"},
		{Document: "c.pdf", Heading: "Alpha", Body: "identical text"},
	}
	r := NewRanker(DefaultWeights(), false)
	ranked := r.Rank("Reader", "identical text", sections)

	want := []string{"a.pdf", "b.pdf", "c.pdf"}
	for i, doc := range want {
		if ranked[i].Document != doc {
			t.Errorf("tied rank %d is %q, want %q", i+1, ranked[i].Document, doc)
		}
	}
}

func TestRank_QualityStageOffReproducesBaseScores(t *testing.T) {
	mk := func() []outline.Section {
		return []outline.Section{
			{Document: "a.pdf", Heading: "Methodology", Body: "randomized trial methodology", Level: 1, Confidence: 0.9, WordCount: 3},
			{Document: "a.pdf", Heading: "Notes", Body: "methodology appendix", Level: 3, Confidence: 0.2, WordCount: 2},
		}
	}

	base := NewRanker(DefaultWeights(), false).Rank("Researcher", "find methodology", mk())
	for _, s := range base {
		if s.Score != s.BaseScore {
			t.Errorf("quality off: score %.4f differs from base %.4f", s.Score, s.BaseScore)
		}
	}

	enhanced := NewRanker(DefaultWeights(), true).Rank("Researcher", "find methodology", mk())
	for _, s := range enhanced {
		if s.Score == s.BaseScore {
			t.Errorf("quality on: expected adjusted score for %q", s.Heading)
		}
	}
}

func TestRank_PercentileClamped(t *testing.T) {
	sections := []outline.Section{
		{Document: "a.pdf", Heading: "Unrelated", Body: "nothing matches here"},
	}
	ranked := NewRanker(DefaultWeights(), true).Rank("Pilot", "fly planes", sections)
	if p := ranked[0].Percentile; p < 0.1 || p > 1.0 {
		t.Errorf("percentile %.4f out of [0.1, 1.0]", p)
	}
}
