package outline

import (
	"regexp"
	"strings"
)

// Enrichment passes layered on top of the base sections. They only add the
// optional Level and Confidence fields; base section building and ranking
// stay reproducible without them.

var (
	majorHeadingWords = []string{"abstract", "introduction", "conclusion"}

	meaningfulHeadingWords = []string{
		"introduction", "overview", "analysis", "results", "conclusion",
		"methodology", "findings", "discussion", "summary", "abstract",
		"background", "literature", "research", "study", "approach",
	}

	levelTwoRE   = regexp.MustCompile(`^\d+\.?\s`)
	levelThreeRE = regexp.MustCompile(`^\d+\.\d+`)
	structuredRE = regexp.MustCompile(`[•\-\*]\s|\d+\.|[A-Z]\)`)
)

// EnrichLevels assigns a heading level to each section: 1 for major sections,
// higher for nested ones. The heuristic only looks at the heading text.
func EnrichLevels(sections []Section) {
	for i := range sections {
		sections[i].Level = headingLevel(sections[i].Heading)
	}
}

func headingLevel(heading string) int {
	h := strings.TrimSpace(heading)
	lower := strings.ToLower(h)
	for _, w := range majorHeadingWords {
		if strings.Contains(lower, w) {
			return 1
		}
	}
	if len(strings.Fields(h)) <= 3 && h == strings.ToUpper(h) && h != strings.ToLower(h) {
		return 1
	}
	if levelThreeRE.MatchString(h) {
		return 3
	}
	if levelTwoRE.MatchString(h) {
		return 2
	}
	return 2
}

// EnrichConfidence assigns each section a content-quality score in
// [0.1, 1.0] based on body length, heading keywords and structural richness.
func EnrichConfidence(sections []Section) {
	for i := range sections {
		sections[i].Confidence = sectionConfidence(sections[i].Heading, sections[i].Body)
	}
}

func sectionConfidence(heading, body string) float64 {
	conf := 0.5

	words := len(strings.Fields(body))
	if words > 100 {
		conf += 0.2
	} else if words > 50 {
		conf += 0.1
	}

	lower := strings.ToLower(heading)
	for _, w := range meaningfulHeadingWords {
		if strings.Contains(lower, w) {
			conf += 0.15
			break
		}
	}

	if len(strings.Fields(heading)) < 2 {
		conf -= 0.1
	}

	if structuredRE.MatchString(body) {
		conf += 0.1
	}

	if conf > 1.0 {
		conf = 1.0
	}
	if conf < 0.1 {
		conf = 0.1
	}
	return conf
}
