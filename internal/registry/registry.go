// Package registry keeps track of uploaded documents. Files live on disk
// under a single directory, named "{id}_{filename}", so the registry can
// rebuild its index from a directory scan on startup.
package registry

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Document describes one stored document.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`

	path string
}

// Path returns the on-disk location of the document file.
func (d Document) Path() string { return d.path }

// Registry is a thread-safe index of stored documents.
type Registry struct {
	mu   sync.Mutex
	dir  string
	docs map[string]Document
}

// Open creates the storage directory if needed and rebuilds the index from
// files already present.
func Open(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	r := &Registry{
		dir:  dir,
		docs: make(map[string]Document),
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan storage dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, name, ok := strings.Cut(e.Name(), "_")
		if !ok || id == "" || name == "" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		r.docs[id] = Document{
			ID:         id,
			Name:       name,
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
			path:       filepath.Join(dir, e.Name()),
		}
	}
	return r, nil
}

// Store writes document bytes to disk and registers them. The ID is derived
// from the content hash, so storing the same bytes twice returns the existing
// record without rewriting the file.
func (r *Registry) Store(name string, data []byte) (Document, error) {
	id := ContentHashHex(data)[:16]

	r.mu.Lock()
	defer r.mu.Unlock()

	if doc, ok := r.docs[id]; ok {
		return doc, nil
	}

	path := filepath.Join(r.dir, id+"_"+name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Document{}, fmt.Errorf("write document: %w", err)
	}
	doc := Document{
		ID:         id,
		Name:       name,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
		path:       path,
	}
	r.docs[id] = doc
	return doc, nil
}

// Get looks up a document by ID.
func (r *Registry) Get(id string) (Document, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	return doc, ok
}

// List returns all documents sorted by name.
func (r *Registry) List() []Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete removes a document from the index and from disk.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	if err := os.Remove(doc.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove document file: %w", err)
	}
	delete(r.docs, id)
	return nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
