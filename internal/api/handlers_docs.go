package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/docusense/docusense/internal/extract"
)

// handleUpload accepts one or more document files as multipart form data.
// Identical content is deduplicated by the registry.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if fhs := r.MultipartForm.File["file"]; len(fhs) > 0 {
		files = append(files, fhs...)
	}
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var results []map[string]any
	stored := 0
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !extract.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("file too large (max %d bytes) or read error", s.cfg.MaxUploadBytes),
			})
			continue
		}

		doc, err := s.reg.Store(filename, data)
		if err != nil {
			s.log.Error("store failed", "filename", filename, "error", err)
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to store file",
			})
			continue
		}

		stored++
		results = append(results, map[string]any{
			"filename":    doc.Name,
			"document_id": doc.ID,
			"size":        doc.Size,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if stored > 0 {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusBadRequest)
	}
	json.NewEncoder(w).Encode(map[string]any{"documents": results})
}

// handleListDocuments lists all stored documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.reg.List()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleDeleteDocument removes a document from the registry and from disk.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if _, ok := s.reg.Get(docID); !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	if err := s.reg.Delete(docID); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

// handleDownloadDocument serves the original file bytes.
func (s *Server) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, ok := s.reg.Get(docID)
	if !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	http.ServeFile(w, r, doc.Path())
}

// handleOutline returns the structural outline of one document.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if _, ok := s.reg.Get(docID); !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	out, err := s.engine.Outline(r.Context(), docID)
	if err != nil {
		s.log.Error("outline failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to analyze document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
