package outline

import "strings"

// Section is a heading plus its accumulated body text, the atomic ranking
// unit. Base fields are set by BuildSections; Level and Confidence by the
// enrichment passes; Score, BaseScore, Percentile and Rank by the ranker.
type Section struct {
	Document  string `json:"document"`
	Heading   string `json:"heading"`
	Page      int    `json:"page"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	Body      string `json:"text"`
	WordCount int    `json:"word_count"`

	// Optional enrichments.
	Level      int     `json:"level,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	// Ranking annotations.
	Score      float64 `json:"score,omitempty"`
	BaseScore  float64 `json:"base_score,omitempty"`
	Percentile float64 `json:"percentile,omitempty"`
	Rank       int     `json:"importance_rank,omitempty"`
}

// BuildSections groups tagged blocks into sections for one document. TITLE
// blocks are skipped; each HEADING starts a new section and following BODY
// text accumulates into it. Body text before the first heading is dropped.
// A document with no headings yields exactly one fallback section spanning
// the whole document, named after the document itself.
func BuildSections(blocks []TaggedBlock, docName string) []Section {
	var sections []Section

	var heading *TaggedBlock
	var body []string
	var pages []int

	flush := func() {
		if heading != nil {
			sections = append(sections, newSection(docName, heading, body, pages))
		}
		heading = nil
		body = nil
		pages = nil
	}

	for i := range blocks {
		b := &blocks[i]
		switch b.Tag {
		case TagTitle:
			continue
		case TagHeading:
			flush()
			heading = b
			pages = []int{b.Page}
		default:
			if heading != nil {
				body = append(body, b.Text)
				pages = append(pages, b.Page)
			}
		}
	}
	flush()

	if len(sections) == 0 {
		var all []string
		for _, b := range blocks {
			if b.Tag != TagTitle {
				all = append(all, b.Text)
			}
		}
		text := strings.TrimSpace(strings.Join(all, " "))
		sections = append(sections, Section{
			Document:  docName,
			Heading:   docName,
			Page:      1,
			StartPage: 1,
			EndPage:   1,
			Body:      text,
			WordCount: len(strings.Fields(text)),
		})
	}
	return sections
}

func newSection(docName string, heading *TaggedBlock, body []string, pages []int) Section {
	text := strings.TrimSpace(strings.Join(body, " "))
	minPage, maxPage := heading.Page, heading.Page
	for _, p := range pages {
		if p < minPage {
			minPage = p
		}
		if p > maxPage {
			maxPage = p
		}
	}
	return Section{
		Document:  docName,
		Heading:   heading.Text,
		Page:      minPage,
		StartPage: minPage,
		EndPage:   maxPage,
		Body:      text,
		WordCount: len(strings.Fields(text)),
	}
}
