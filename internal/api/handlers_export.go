package api

import (
	"fmt"
	"net/http"
)

// handleExport bundles the workspace into a zip download. The chapter
// map is included unless ?include_map=false.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.ownerWorkspace(w, r)
	if !ok {
		return
	}

	includeMap := r.URL.Query().Get("include_map") != "false"
	data, err := ws.Export(includeMap)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ws.Owner+"-files.zip"))
	w.Write(data)
}
