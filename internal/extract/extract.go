// Package extract turns document files into tagged line blocks. PDF and
// plain text go through the heuristic layout classifier; structured formats
// (Markdown, HTML, DOCX) carry their heading roles in the markup and are
// tagged directly, so every format feeds the same section builder.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docusense/docusense/internal/outline"
)

// Document is the extraction result for one file.
type Document struct {
	Name   string
	Title  *outline.TaggedBlock
	Blocks []outline.TaggedBlock
}

// Extractor converts raw document bytes into tagged blocks.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Document, error)
}

// extractors is the single registry of supported file extensions; dispatch
// and the supported-extension check both derive from it. The classifier is
// used by formats without explicit structure (PDF, plain text).
var extractors = map[string]func(cls *outline.Classifier) Extractor{
	".pdf":      func(cls *outline.Classifier) Extractor { return &PDFExtractor{Classifier: cls} },
	".md":       func(*outline.Classifier) Extractor { return &MarkdownExtractor{} },
	".markdown": func(*outline.Classifier) Extractor { return &MarkdownExtractor{} },
	".html":     func(*outline.Classifier) Extractor { return &HTMLExtractor{} },
	".htm":      func(*outline.Classifier) Extractor { return &HTMLExtractor{} },
	".docx":     func(*outline.Classifier) Extractor { return &DOCXExtractor{} },
	".txt":      func(cls *outline.Classifier) Extractor { return &TextExtractor{Classifier: cls} },
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, cls *outline.Classifier) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mk, ok := extractors[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
	return mk(cls), nil
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := extractors[ext]
	return ok
}
