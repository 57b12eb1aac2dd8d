// Package api exposes the topic generation service over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ctwg/ditagen/internal/config"
	"github.com/ctwg/ditagen/internal/ditaml"
	"github.com/ctwg/ditagen/internal/draft"
	"github.com/ctwg/ditagen/internal/workspace"
)

// Drafter produces first-draft topic text from a source document.
type Drafter interface {
	GenerateDraft(ctx context.Context, req draft.Request) (string, error)
}

// Server is the HTTP API server for ditagen.
type Server struct {
	router     chi.Router
	workspaces *workspace.Manager
	drafter    Drafter
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server. drafter may be nil
// when draft generation is not configured.
func NewServer(ws *workspace.Manager, drafter Drafter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		workspaces: ws,
		drafter:    drafter,
		log:        log,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Workspace endpoints, authenticated when an API key is set.
	r.Route("/api/workspaces/{owner}", func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/topics", s.handleGenerateTopics)
		r.Get("/topics", s.handleListTopics)
		r.Delete("/files/{filename}", s.handleRemoveFile)
		r.Delete("/", s.handleClear)

		r.Post("/map", s.handleBuildMap)
		r.Get("/export", s.handleExport)

		r.Post("/draft", s.handleDraft)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// ownerWorkspace resolves the workspace for the request's owner param,
// writing the error response itself on failure.
func (s *Server) ownerWorkspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	owner := chi.URLParam(r, "owner")
	ws, err := s.workspaces.Get(owner)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return nil, false
	}
	return ws, true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ditaml.ErrEmptyTitle),
		errors.Is(err, ditaml.ErrMissingField),
		errors.Is(err, workspace.ErrInvalidOwner):
		return http.StatusBadRequest
	case errors.Is(err, ditaml.ErrDuplicateTitle),
		errors.Is(err, ditaml.ErrNoTopics):
		return http.StatusConflict
	case errors.Is(err, workspace.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
