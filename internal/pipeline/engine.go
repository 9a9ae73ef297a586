// Package pipeline runs the analysis flow: load documents from the registry,
// extract tagged blocks, assemble sections, rank them against the persona +
// job query, and emit a report. Per-document work runs concurrently with
// bounded parallelism and recent reports are served from an LRU cache.
package pipeline

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/docusense/docusense/internal/extract"
	"github.com/docusense/docusense/internal/outline"
	"github.com/docusense/docusense/internal/registry"
	"github.com/docusense/docusense/internal/relevance"
)

// ErrDocumentNotFound is returned when a requested document ID is unknown.
var ErrDocumentNotFound = errors.New("document not found")

// Options configures the engine.
type Options struct {
	Workers     int // concurrent document extractions
	CacheSize   int // LRU entries for recommendation reports
	TopK        int // default number of ranked sections in a report
	MaxSnippets int // default refined fragments per top section
}

func (o *Options) fill() {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.CacheSize <= 0 {
		o.CacheSize = 128
	}
	if o.TopK <= 0 {
		o.TopK = 5
	}
	if o.MaxSnippets <= 0 {
		o.MaxSnippets = 3
	}
}

// Request describes one recommendation run.
type Request struct {
	Persona     string   `json:"persona"`
	Job         string   `json:"job_to_be_done"`
	DocIDs      []string `json:"document_ids,omitempty"`
	TopK        int      `json:"top_k,omitempty"`
	MaxSnippets int      `json:"max_snippets,omitempty"`
}

// DocumentOutline is the structural view of a single document.
type DocumentOutline struct {
	Document string            `json:"document"`
	Title    string            `json:"title,omitempty"`
	Sections []outline.Section `json:"sections"`
}

// Engine ties the registry, extractors and ranker together.
type Engine struct {
	reg    *registry.Registry
	ranker *relevance.Ranker
	cls    *outline.Classifier
	cache  *lru.Cache[string, *Report]
	log    *slog.Logger
	opts   Options
}

// NewEngine builds an engine. Zero Options fields get defaults.
func NewEngine(reg *registry.Registry, ranker *relevance.Ranker, cls *outline.Classifier, log *slog.Logger, opts Options) (*Engine, error) {
	opts.fill()
	cache, err := lru.New[string, *Report](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create report cache: %w", err)
	}
	return &Engine{
		reg:    reg,
		ranker: ranker,
		cls:    cls,
		cache:  cache,
		log:    log,
		opts:   opts,
	}, nil
}

// Recommend analyzes the requested documents and returns the ranked report.
// Documents that fail to extract are skipped with a warning; if every
// document fails the report is empty, not an error. An unknown document ID
// is an error so callers can answer 404.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Report, error) {
	if req.TopK <= 0 {
		req.TopK = e.opts.TopK
	}
	if req.MaxSnippets <= 0 {
		req.MaxSnippets = e.opts.MaxSnippets
	}

	docs, err := e.resolveDocs(req.DocIDs)
	if err != nil {
		return nil, err
	}

	key := cacheKey(req, docs)
	if rep, ok := e.cache.Get(key); ok {
		e.log.Debug("report cache hit", "key", key[:12])
		return rep, nil
	}

	sections, names := e.analyzeAll(ctx, docs)

	ranked := e.ranker.Rank(req.Persona, req.Job, sections)
	top := ranked
	if len(top) > req.TopK {
		top = top[:req.TopK]
	}

	var snippets []relevance.Snippet
	for _, s := range top {
		snippets = append(snippets, relevance.ExtractSnippets(s, req.Persona, req.Job, req.MaxSnippets)...)
	}

	rep := buildReport(names, req.Persona, req.Job, top, snippets)
	e.cache.Add(key, rep)
	return rep, nil
}

// Outline extracts a single document and returns its title and sections.
func (e *Engine) Outline(ctx context.Context, docID string) (*DocumentOutline, error) {
	doc, ok := e.reg.Get(docID)
	if !ok {
		return nil, fmt.Errorf("document %s: %w", docID, ErrDocumentNotFound)
	}
	title, sections, err := e.analyzeOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	out := &DocumentOutline{Document: doc.Name, Title: title, Sections: sections}
	if out.Sections == nil {
		out.Sections = []outline.Section{}
	}
	return out, nil
}

func (e *Engine) resolveDocs(ids []string) ([]registry.Document, error) {
	if len(ids) == 0 {
		return e.reg.List(), nil
	}
	docs := make([]registry.Document, 0, len(ids))
	for _, id := range ids {
		doc, ok := e.reg.Get(id)
		if !ok {
			return nil, fmt.Errorf("document %s: %w", id, ErrDocumentNotFound)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// analyzeAll extracts and sections every document with bounded concurrency.
// It returns the pooled sections plus the names of documents that succeeded.
func (e *Engine) analyzeAll(ctx context.Context, docs []registry.Document) ([]outline.Section, []string) {
	type result struct {
		idx      int
		sections []outline.Section
		err      error
	}
	results := make(chan result, len(docs))
	sem := make(chan struct{}, e.opts.Workers)

	for i, doc := range docs {
		sem <- struct{}{}
		go func(i int, doc registry.Document) {
			defer func() { <-sem }()
			_, sections, err := e.analyzeOne(ctx, doc)
			results <- result{idx: i, sections: sections, err: err}
		}(i, doc)
	}

	perDoc := make([][]outline.Section, len(docs))
	failed := make([]bool, len(docs))
	for range docs {
		r := <-results
		if r.err != nil {
			e.log.Warn("document analysis failed, skipping",
				"document", docs[r.idx].Name, "error", r.err)
			failed[r.idx] = true
			continue
		}
		perDoc[r.idx] = r.sections
	}

	var sections []outline.Section
	var names []string
	for i, doc := range docs {
		if failed[i] {
			continue
		}
		names = append(names, doc.Name)
		sections = append(sections, perDoc[i]...)
	}
	return sections, names
}

// analyzeOne runs extraction, section assembly and quality enrichment for a
// single document.
func (e *Engine) analyzeOne(ctx context.Context, doc registry.Document) (string, []outline.Section, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	ex, err := extract.ForFile(doc.Name, e.cls)
	if err != nil {
		return "", nil, err
	}
	f, err := os.Open(doc.Path())
	if err != nil {
		return "", nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	extracted, err := ex.Extract(f, doc.Name)
	if err != nil {
		return "", nil, fmt.Errorf("extract %s: %w", doc.Name, err)
	}

	sections := outline.BuildSections(extracted.Blocks, doc.Name)
	outline.EnrichLevels(sections)
	outline.EnrichConfidence(sections)

	title := ""
	if extracted.Title != nil {
		title = extracted.Title.Text
	}
	return title, sections, nil
}

// cacheKey hashes everything that determines a report's content. Document
// IDs are content-derived, so a re-uploaded identical file still hits.
// Every string field is length-prefixed so field boundaries are unambiguous
// regardless of the characters the inputs contain.
func cacheKey(req Request, docs []registry.Document) string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	sort.Strings(ids)

	h := sha256.New()
	field := func(s string) {
		fmt.Fprintf(h, "%d:%s", len(s), s)
	}
	field(req.Persona)
	field(req.Job)
	for _, id := range ids {
		field(id)
	}
	fmt.Fprintf(h, "%d:%d", req.TopK, req.MaxSnippets)
	return fmt.Sprintf("%x", h.Sum(nil))
}
