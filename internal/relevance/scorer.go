package relevance

import (
	"fmt"
	"math"
)

// Weights balances the three lexical signals. They must sum to 1.
type Weights struct {
	Lexical float64 // tf-idf cosine similarity between query and body text
	Heading float64 // keyword overlap between heading and query
	Domain  float64 // saturating raw keyword-density bonus
}

// DefaultWeights returns the reference weighting.
func DefaultWeights() Weights {
	return Weights{Lexical: 0.6, Heading: 0.25, Domain: 0.15}
}

// Validate checks the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Lexical < 0 || w.Heading < 0 || w.Domain < 0 {
		return fmt.Errorf("scoring weights must be non-negative: %+v", w)
	}
	if sum := w.Lexical + w.Heading + w.Domain; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

// LexicalScores computes the tf-idf cosine similarity between the query and
// each candidate. The vocabulary is shared across query + candidates for this
// batch only, so relative scores are consistent within one ranking pass and
// independent across passes. Returns one score per candidate, in input order.
// An empty shared vocabulary (all-stopword input) yields all zeros.
func LexicalScores(query string, candidates []string) []float64 {
	scores := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return scores
	}

	docs := make([]string, 0, len(candidates)+1)
	docs = append(docs, query)
	docs = append(docs, candidates...)

	// Shared vocabulary in first-seen order.
	vocab := make(map[string]int)
	for _, d := range docs {
		for _, t := range keywordTokens(d) {
			if _, ok := vocab[t]; !ok {
				vocab[t] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return scores
	}

	n := len(docs)
	tf := make([][]float64, n)
	df := make([]float64, len(vocab))
	for i, d := range docs {
		row := make([]float64, len(vocab))
		seen := make(map[int]struct{})
		for _, t := range keywordTokens(d) {
			j := vocab[t]
			row[j]++
			seen[j] = struct{}{}
		}
		for j := range seen {
			df[j]++
		}
		tf[i] = row
	}

	idf := make([]float64, len(vocab))
	for j := range idf {
		idf[j] = math.Log(float64(1+n)/(1+df[j])) + 1.0
	}

	// Weight and L2-normalize each row.
	for i := range tf {
		var norm float64
		for j := range tf[i] {
			tf[i][j] *= idf[j]
			norm += tf[i][j] * tf[i][j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range tf[i] {
				tf[i][j] /= norm
			}
		}
	}

	// Cosine similarity is the dot product of normalized vectors.
	q := tf[0]
	for i, row := range tf[1:] {
		var dot float64
		for j := range row {
			dot += row[j] * q[j]
		}
		scores[i] = dot
	}
	return scores
}

// headingOverlap is the fraction of the heading's keywords that also appear
// in the query keyword set; 0 when the heading has no keywords.
func headingOverlap(heading string, kw map[string]struct{}) float64 {
	hkw := KeywordSet(heading)
	if len(hkw) == 0 {
		return 0
	}
	overlap := 0
	for w := range hkw {
		if _, ok := kw[w]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(hkw))
}

// domainBoost is a gently saturating bonus for raw keyword-set overlap
// between candidate text and the query keywords, independent of tf-idf.
func domainBoost(text string, kw map[string]struct{}) float64 {
	toks := KeywordSet(text)
	if len(toks) == 0 {
		return 0
	}
	overlap := 0
	for w := range toks {
		if _, ok := kw[w]; ok {
			overlap++
		}
	}
	return math.Log1p(float64(overlap)) / 5.0
}

// CombinedScores produces the weighted sum of the three signals for each
// candidate. headings and texts must have equal length; scores are returned
// in input order and are not clamped to any fixed scale.
func CombinedScores(q Query, headings, texts []string, w Weights) []float64 {
	lexical := LexicalScores(q.Text, texts)
	scores := make([]float64, len(texts))
	for i := range texts {
		scores[i] = w.Lexical*lexical[i] +
			w.Heading*headingOverlap(headings[i], q.Keywords) +
			w.Domain*domainBoost(texts[i], q.Keywords)
	}
	return scores
}
