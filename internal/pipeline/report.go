package pipeline

import (
	"time"

	"github.com/docusense/docusense/internal/outline"
	"github.com/docusense/docusense/internal/relevance"
)

// Report is the result of one recommendation run across a document set.
type Report struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []Subsection       `json:"subsection_analysis"`
}

// Metadata echoes the inputs and records when the report was produced.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection is one ranked section in the report.
type ExtractedSection struct {
	Document       string  `json:"document"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	PageNumber     int     `json:"page_number"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Subsection is one refined text fragment from a top-ranked section.
type Subsection struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// buildReport assembles the output document from ranked sections and their
// snippets. Slices are always non-nil so the JSON shape is stable.
func buildReport(docNames []string, persona, job string, top []outline.Section, snippets []relevance.Snippet) *Report {
	rep := &Report{
		Metadata: Metadata{
			InputDocuments:      docNames,
			Persona:             persona,
			JobToBeDone:         job,
			ProcessingTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(top)),
		SubsectionAnalysis: make([]Subsection, 0, len(snippets)),
	}
	if rep.Metadata.InputDocuments == nil {
		rep.Metadata.InputDocuments = []string{}
	}
	for _, s := range top {
		rep.ExtractedSections = append(rep.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			SectionTitle:   s.Heading,
			ImportanceRank: s.Rank,
			PageNumber:     s.Page,
			RelevanceScore: s.Score,
		})
	}
	for _, sn := range snippets {
		rep.SubsectionAnalysis = append(rep.SubsectionAnalysis, Subsection{
			Document:    sn.Document,
			RefinedText: sn.Text,
			PageNumber:  sn.Page,
		})
	}
	return rep
}
