package extract

import (
	"strings"
	"testing"

	"github.com/docusense/docusense/internal/outline"
)

func TestHTMLExtract(t *testing.T) {
	input := `<html>
<head><title>City Travel Guide</title><style>body{color:red}</style></head>
<body>
<nav><a href="/">home</a></nav>
<h1>Getting Around</h1>
<p>The metro runs every five minutes.</p>
<h2>Tickets</h2>
<p>Day passes cost nine euros.</p>
<script>alert("hi")</script>
<footer>copyright notice</footer>
</body>
</html>`

	ex := &HTMLExtractor{}
	doc, err := ex.Extract(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if doc.Title == nil || doc.Title.Text != "City Travel Guide" {
		t.Errorf("title = %+v, want City Travel Guide", doc.Title)
	}

	var headings, body []string
	for _, b := range doc.Blocks {
		switch b.Tag {
		case outline.TagHeading:
			headings = append(headings, b.Text)
		case outline.TagBody:
			body = append(body, b.Text)
		}
	}

	wantHeadings := []string{"Getting Around", "Tickets"}
	if len(headings) != 2 || headings[0] != wantHeadings[0] || headings[1] != wantHeadings[1] {
		t.Errorf("headings = %v, want %v", headings, wantHeadings)
	}

	joined := strings.Join(body, " ")
	if !strings.Contains(joined, "metro runs") || !strings.Contains(joined, "nine euros") {
		t.Errorf("body missing paragraph text: %q", joined)
	}
	if strings.Contains(joined, "alert") || strings.Contains(joined, "copyright") || strings.Contains(joined, "home") {
		t.Errorf("body contains skipped element text: %q", joined)
	}
}

func TestHTMLNoBodyTag(t *testing.T) {
	// html.Parse synthesizes the body element, but the walk should still
	// find the content either way.
	input := `<h2>Fragment Heading</h2><p>Loose paragraph.</p>`
	ex := &HTMLExtractor{}
	doc, err := ex.Extract(strings.NewReader(input), "frag.html")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(doc.Blocks), doc.Blocks)
	}
	if doc.Blocks[0].Tag != outline.TagHeading || doc.Blocks[0].Text != "Fragment Heading" {
		t.Errorf("block 0 = %+v", doc.Blocks[0])
	}
}
