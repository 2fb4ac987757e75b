// Package http exposes the sequence planning engine over a JSON HTTP API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seqplan/seqplan"
	"github.com/seqplan/seqplan/internal/logging"
	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

// Engine defines the interface for the sequence planning core.
type Engine interface {
	Solve(ctx context.Context, scene domain.Scene, planner ports.PlannerService, req domain.SequenceRequest) (*seqplan.Result, error)
	Validate(req domain.SequenceRequest) error
}

// Server holds the collaborators the HTTP handlers dispatch to.
type Server struct {
	Engine  Engine
	Planner ports.PlannerService
	Store   ports.ResultStore

	registry *prometheus.Registry
	log      *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithStore enables result retrieval under GET /v1/results/{id}.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetrics mounts the registry's collectors under GET /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithLogger sets a custom structured logger for the handlers.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, planner ports.PlannerService, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Planner: planner}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.Health)
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/sequences/solve", s.SolveSequence)
		r.Post("/sequences/validate", s.ValidateSequence)
		r.Get("/results/{id}", s.GetResult)
	})
	return r
}

// SolveSequence handles the POST /v1/sequences/solve request.
func (s *Server) SolveSequence(w http.ResponseWriter, r *http.Request) {
	var req domain.SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: kindBadRequest})
		s.log.Warn("solve: invalid request body", "err", err)
		return
	}

	result, err := s.Engine.Solve(r.Context(), nil, s.Planner, req)
	if err != nil {
		status, resp := mapError(err)
		writeError(w, status, resp)
		s.log.Warn("solve failed", "err", err)
		return
	}

	resp := SolveResponse{ID: result.ID, Trajectories: trajectoryPayloads(result.Trajectories)}
	writeJSON(w, http.StatusOK, resp, s.log)
}

// ValidateSequence handles the POST /v1/sequences/validate request.
func (s *Server) ValidateSequence(w http.ResponseWriter, r *http.Request) {
	var req domain.SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: kindBadRequest})
		s.log.Warn("validate: invalid request body", "err", err)
		return
	}

	if err := s.Engine.Validate(req); err != nil {
		status, resp := mapError(err)
		writeError(w, status, resp)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetResult handles the GET /v1/results/{id} request.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, errorResponse{Error: "result storage is not configured", Kind: kindNotImplemented})
		return
	}

	id := chi.URLParam(r, "id")
	result, err := s.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			writeError(w, http.StatusNotFound, errorResponse{Error: "result not found", Kind: kindNotFound})
			return
		}
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "failed to load result", Kind: kindInternal})
		s.log.Error("result load failed", "id", id, "err", err)
		return
	}

	resp := ResultResponse{
		ID:           result.ID,
		CreatedAt:    result.CreatedAt,
		Trajectories: trajectoryPayloads(result.Trajectories),
	}
	writeJSON(w, http.StatusOK, resp, s.log)
}

// Health handles the GET /healthz request.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.log)
}
