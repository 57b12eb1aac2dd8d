package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ctwg/ditagen/internal/ditaml"
	"github.com/ctwg/ditagen/internal/workspace"
)

type topicRequest struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	Shortdesc    string `json:"shortdesc,omitempty"`
	BodyMarkdown string `json:"body_markdown,omitempty"`
}

type generateRequest struct {
	Topics []topicRequest `json:"topics"`
}

type topicResult struct {
	Title    string `json:"title"`
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

// handleGenerateTopics generates one or more topics in the owner's
// workspace. Items are processed independently; each reports its own
// outcome.
func (s *Server) handleGenerateTopics(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.ownerWorkspace(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Topics) == 0 {
		jsonError(w, "at least one topic is required", http.StatusBadRequest)
		return
	}

	generated := 0
	results := make([]topicResult, 0, len(req.Topics))
	for _, t := range req.Topics {
		res := topicResult{Title: t.Title}

		ct, err := ditaml.ParseContentType(t.Type)
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		topic, err := ws.Generate(workspace.TopicRequest{
			Type:         ct,
			Title:        t.Title,
			Shortdesc:    t.Shortdesc,
			BodyMarkdown: t.BodyMarkdown,
		})
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		res.ID = topic.ID
		res.Filename = topic.Filename
		results = append(results, res)
		generated++
	}

	status := http.StatusCreated
	if generated == 0 {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": ws.SessionID,
		"generated":  generated,
		"results":    results,
	})
}

// handleListTopics lists the generated files in the owner's workspace,
// chapter maps included.
func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.ownerWorkspace(w, r)
	if !ok {
		return
	}

	entries, err := ws.List()
	if err != nil {
		jsonError(w, "failed to list topics: "+err.Error(), http.StatusInternalServerError)
		return
	}
	maps, err := ws.MapFiles()
	if err != nil {
		jsonError(w, "failed to list maps: "+err.Error(), http.StatusInternalServerError)
		return
	}

	topics := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		topics = append(topics, map[string]string{
			"filename": e.Filename,
			"type":     string(e.Type),
			"title":    e.Title,
		})
	}
	if maps == nil {
		maps = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": ws.SessionID,
		"topics":     topics,
		"maps":       maps,
	})
}

// handleRemoveFile deletes a single generated file.
func (s *Server) handleRemoveFile(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.ownerWorkspace(w, r)
	if !ok {
		return
	}

	filename := chi.URLParam(r, "filename")
	if err := ws.Remove(filename); err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"removed": filename})
}

// handleClear removes every generated file in the workspace.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.ownerWorkspace(w, r)
	if !ok {
		return
	}

	if err := ws.Clear(); err != nil {
		jsonError(w, "failed to clear workspace: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
