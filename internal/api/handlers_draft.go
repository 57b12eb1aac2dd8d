package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ctwg/ditagen/internal/draft"
	"github.com/ctwg/ditagen/internal/source"
)

// handleDraft extracts text from an uploaded source document and asks
// the configured model for a first-draft topic body.
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	if s.drafter == nil {
		jsonError(w, "draft generation is not configured", http.StatusServiceUnavailable)
		return
	}

	ws, ok := s.ownerWorkspace(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	doc, err := source.Extract(file, filename)
	if err != nil {
		jsonError(w, "failed to extract source text: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	text, err := s.drafter.GenerateDraft(r.Context(), draft.Request{
		Product:      r.FormValue("product"),
		Instructions: r.FormValue("instructions"),
		Source:       doc,
	})
	if err != nil {
		jsonError(w, "draft generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"session_id": ws.SessionID,
		"source":     doc.Title,
		"draft":      text,
	})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
