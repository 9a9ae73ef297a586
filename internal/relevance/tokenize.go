// Package relevance scores document sections and snippets against a
// persona + job-to-be-done query using purely lexical signals. Scoring is
// deterministic: no external services, no randomness, no state shared
// between calls.
package relevance

import (
	"regexp"
	"strings"
)

var wordRE = regexp.MustCompile(`[A-Za-z0-9_]+`)

// stopwords is the fixed list excluded from keyword sets and tf-idf terms.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "to": {}, "and": {}, "in": {},
	"on": {}, "for": {}, "with": {}, "by": {}, "is": {}, "are": {}, "be": {},
	"was": {}, "were": {}, "as": {}, "at": {}, "from": {}, "or": {},
	"that": {}, "this": {}, "it": {}, "its": {}, "into": {}, "about": {},
	"your": {}, "their": {}, "his": {}, "her": {}, "our": {}, "we": {},
	"you": {}, "i": {},
}

// Tokenize splits text into lowercased alphanumeric runs.
func Tokenize(text string) []string {
	words := wordRE.FindAllString(text, -1)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// keywordTokens returns the tokens that survive stopword and short-token
// filtering, in order and with duplicates.
func keywordTokens(text string) []string {
	var out []string
	for _, w := range Tokenize(text) {
		if _, stop := stopwords[w]; stop || len(w) <= 2 {
			continue
		}
		out = append(out, w)
	}
	return out
}

// KeywordSet returns the set of distinct keywords in text.
func KeywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range keywordTokens(text) {
		set[w] = struct{}{}
	}
	return set
}

// Query is the derived persona + job ranking context. It is built fresh per
// ranking request and never persisted, so concurrent requests cannot
// interfere through it.
type Query struct {
	Persona  string
	Job      string
	Text     string
	Keywords map[string]struct{}
}

// BuildQuery derives the combined query string and keyword set.
func BuildQuery(persona, job string) Query {
	kw := KeywordSet(persona)
	for w := range KeywordSet(job) {
		kw[w] = struct{}{}
	}
	return Query{
		Persona:  persona,
		Job:      job,
		Text:     persona + " " + job,
		Keywords: kw,
	}
}
