package extract

import (
	"strings"
	"testing"

	"github.com/docusense/docusense/internal/outline"
)

func TestMarkdownExtractHeadings(t *testing.T) {
	input := `# Annual Report

Opening remarks about the year.

## Financial Summary

Revenue grew by twelve percent.

## Outlook

Next year looks promising.
`
	ex := &MarkdownExtractor{}
	doc, err := ex.Extract(strings.NewReader(input), "report.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	var headings []string
	for _, b := range doc.Blocks {
		if b.Tag == outline.TagHeading {
			headings = append(headings, b.Text)
		}
	}
	want := []string{"Annual Report", "Financial Summary", "Outlook"}
	if len(headings) != len(want) {
		t.Fatalf("got %d headings %v, want %d", len(headings), headings, len(want))
	}
	for i := range want {
		if headings[i] != want[i] {
			t.Errorf("heading[%d] = %q, want %q", i, headings[i], want[i])
		}
	}
}

func TestMarkdownHeadingLevelsMapToFontRank(t *testing.T) {
	input := "# Top\n\n## Second\n\n### Third\n"
	ex := &MarkdownExtractor{}
	doc, err := ex.Extract(strings.NewReader(input), "levels.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(doc.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(doc.Blocks))
	}
	for i, b := range doc.Blocks {
		if b.FontRank != i {
			t.Errorf("block %q FontRank = %d, want %d", b.Text, b.FontRank, i)
		}
	}
}

func TestMarkdownBodyText(t *testing.T) {
	input := "## Methods\n\nWe used a controlled trial.\n\n- random assignment\n- blind review\n"
	ex := &MarkdownExtractor{}
	doc, err := ex.Extract(strings.NewReader(input), "methods.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	var body []string
	for _, b := range doc.Blocks {
		if b.Tag == outline.TagBody {
			body = append(body, b.Text)
		}
	}
	want := []string{
		"We used a controlled trial.",
		"random assignment blind review",
	}
	if len(body) != len(want) {
		t.Fatalf("body blocks = %q, want %q", body, want)
	}
	for i := range want {
		if body[i] != want[i] {
			t.Errorf("body[%d] = %q, want %q", i, body[i], want[i])
		}
	}
}

func TestMarkdownParagraphTextEmittedOnce(t *testing.T) {
	ex := &MarkdownExtractor{}
	doc, err := ex.Extract(strings.NewReader("## Methods\n\nHello world.\n"), "once.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	var body []string
	for _, b := range doc.Blocks {
		if b.Tag == outline.TagBody {
			body = append(body, b.Text)
		}
	}
	if len(body) != 1 || body[0] != "Hello world." {
		t.Fatalf("body blocks = %q, want exactly [%q]", body, "Hello world.")
	}
}

func TestMarkdownInlineMarkupText(t *testing.T) {
	input := "Plain *emphasis* and a [link](https://example.com) here.\n"
	ex := &MarkdownExtractor{}
	doc, err := ex.Extract(strings.NewReader(input), "inline.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1: %+v", len(doc.Blocks), doc.Blocks)
	}
	if got := doc.Blocks[0].Text; got != "Plain emphasis and a link here." {
		t.Errorf("text = %q, want %q", got, "Plain emphasis and a link here.")
	}
}

func TestMarkdownCodeBlockText(t *testing.T) {
	input := "Intro line.\n\n```\nmake build\n```\n"
	ex := &MarkdownExtractor{}
	doc, err := ex.Extract(strings.NewReader(input), "code.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	var body []string
	for _, b := range doc.Blocks {
		body = append(body, b.Text)
	}
	want := []string{"Intro line.", "make build"}
	if len(body) != len(want) || body[0] != want[0] || body[1] != want[1] {
		t.Errorf("blocks = %q, want %q", body, want)
	}
}

func TestMarkdownEmptyInput(t *testing.T) {
	ex := &MarkdownExtractor{}
	doc, err := ex.Extract(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("got %d blocks for empty input, want 0", len(doc.Blocks))
	}
}
