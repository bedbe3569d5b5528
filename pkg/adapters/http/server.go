package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/internal/presentation/graph"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/manifest"
	"github.com/aretw0/fxforge/pkg/workspace"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiVersion = "1"

// maxJobBody caps POST /projects/{id}/jobs bodies.
const maxJobBody = 1 << 20

// Server exposes a workspace over HTTP.
type Server struct {
	Workspace *workspace.Manager
	Streams   *StreamManager

	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics serves gatherer on GET /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// NewHandler creates the HTTP handler for the workspace.
func NewHandler(ws *workspace.Manager, opts ...Option) http.Handler {
	s := &Server{
		Workspace: ws,
		Streams:   NewStreamManager(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.ListProjects)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetProject)
			r.Delete("/", s.DeleteProject)
			r.Post("/jobs", s.ApplyJobs)
			r.Get("/events", s.SubscribeEvents)
			r.Get("/layers/{layer}/graph", s.GetLayerGraph)
			r.Get("/menu/graph", s.GetMenuGraph)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JobsResponse is returned by POST /projects/{id}/jobs. On a failing job it
// carries the reports of the jobs attempted and the error.
type JobsResponse struct {
	Project string            `json:"project"`
	Reports []*fxforge.Report `json:"reports"`
	Error   string            `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	} else {
		s.logger.Warn("request rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "fxforge-http",
		"version":     strings.TrimSpace(fxforge.Version),
		"api_version": apiVersion,
	})
}

// ListProjects handles GET /projects.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Workspace.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"projects": ids})
}

// GetProject handles GET /projects/{id}.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.Workspace.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{id}.
func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.Workspace.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyJobs handles POST /projects/{id}/jobs. The body is either a single job
// object or {"jobs": [...]}, using the manifest job syntax.
func (s *Server) ApplyJobs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	jobs, err := decodeJobs(http.MaxBytesReader(w, r.Body, maxJobBody))
	if err != nil {
		s.logger.Warn("ApplyJobs: invalid request body", "project_id", id, "err", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reports, err := s.Workspace.Apply(r.Context(), id, jobs...)
	for _, report := range reports {
		if payload, mErr := json.Marshal(report); mErr == nil {
			s.Streams.Broadcast(id, string(payload))
		}
	}

	resp := JobsResponse{Project: id, Reports: reports}
	if resp.Reports == nil {
		resp.Reports = []*fxforge.Report{}
	}
	if err != nil {
		resp.Error = err.Error()
		status := statusOf(err)
		s.logger.Warn("ApplyJobs: job failed", "project_id", id, "status", status, "err", err)
		s.writeJSON(w, status, resp)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func decodeJobs(body io.Reader) ([]fxforge.Job, error) {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	entries := []any{raw}
	if list, ok := raw["jobs"]; ok {
		items, isList := list.([]any)
		if !isList || len(raw) != 1 {
			return nil, errors.New(`"jobs" must be the only field and hold a list`)
		}
		entries = items
	}
	if len(entries) == 0 {
		return nil, errors.New("no jobs given")
	}

	jobs := make([]fxforge.Job, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("job %d: expected an object", i)
		}
		job, err := manifest.DecodeJob(m)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// GetLayerGraph handles GET /projects/{id}/layers/{layer}/graph.
func (s *Server) GetLayerGraph(w http.ResponseWriter, r *http.Request) {
	project, err := s.Workspace.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	name := chi.URLParam(r, "layer")
	var layer *domain.Layer
	if project.Controller != nil {
		layer = project.Controller.Layer(name)
	}
	if layer == nil {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("layer %q not found", name)})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.LayerMermaid(layer))
}

// GetMenuGraph handles GET /projects/{id}/menu/graph. ?format=tree returns
// an indented text tree instead of Mermaid.
func (s *Server) GetMenuGraph(w http.ResponseWriter, r *http.Request) {
	project, err := s.Workspace.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if r.URL.Query().Get("format") == "tree" {
		_, _ = io.WriteString(w, graph.MenuTree(project.Menu))
		return
	}
	_, _ = io.WriteString(w, graph.MenuMermaid(project.Menu))
}
