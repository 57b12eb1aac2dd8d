package api

import (
	"encoding/json"
	"net/http"
)

type buildMapRequest struct {
	ChapterTitle string `json:"chapter_title"`
}

// handleBuildMap rebuilds the chapter map from the workspace contents.
func (s *Server) handleBuildMap(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.ownerWorkspace(w, r)
	if !ok {
		return
	}

	var req buildMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	name, xml, err := ws.BuildMap(req.ChapterTitle)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"filename": name,
		"ditamap":  xml,
	})
}
