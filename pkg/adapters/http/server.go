package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/grouping"
	"github.com/flexile/fieldlayout/pkg/schema"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the operations the HTTP API exposes.
type Engine interface {
	Forms(ctx context.Context) ([]string, error)
	Form(ctx context.Context, id string) (domain.Form, error)
	Layout(ctx context.Context, id string) (domain.Layout, error)
	Group(fields []domain.Field, pairs []grouping.Pair) domain.Layout
	Validate(ctx context.Context, id string, values map[string]any) error
}

// Server holds the handler dependencies.
type Server struct {
	Engine   Engine
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
	// Swagger is the OpenAPI document, loaded when the handler is built.
	// Nil when the embedded document failed to load.
	Swagger *openapi3.T
}

// HandlerOption configures NewHandler.
type HandlerOption func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(s *Server) {
		s.Logger = l
	}
}

// WithMetrics mounts GET /metrics serving g.
func WithMetrics(g prometheus.Gatherer) HandlerOption {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...HandlerOption) http.Handler {
	server := newServer(engine, opts...)

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/openapi.json", server.GetSpec)
	r.Get("/forms", server.ListForms)
	r.Get("/forms/{id}", server.GetForm)
	r.Get("/forms/{id}/layout", server.GetLayout)
	r.Post("/forms/{id}/validate", server.ValidateForm)
	r.Post("/group", server.GroupFields)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func newServer(engine Engine, opts ...HandlerOption) *Server {
	server := &Server{Engine: engine, Logger: slog.Default()}
	for _, opt := range opts {
		opt(server)
	}

	swagger, err := GetSwagger()
	if err != nil {
		server.Logger.Error("Failed to load OpenAPI spec", "error", err)
	}
	server.Swagger = swagger
	return server
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.Swagger != nil && s.Swagger.Info != nil {
		apiVersion = s.Swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "fieldlayout-http",
		"version":     strings.TrimSpace(fieldlayout.Version),
		"api_version": apiVersion,
	})
}

// GetSpec handles the GET /openapi.json request.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	if s.Swagger == nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load spec")
		return
	}
	s.writeJSON(w, http.StatusOK, s.Swagger)
}

// ListForms handles the GET /forms request.
func (s *Server) ListForms(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Forms(r.Context())
	if err != nil {
		s.writeEngineError(w, "ListForms", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetForm handles the GET /forms/{id} request.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	form, err := s.Engine.Form(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, "GetForm", err)
		return
	}
	s.writeJSON(w, http.StatusOK, form)
}

// GetLayout handles the GET /forms/{id}/layout request.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := s.Engine.Layout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, "GetLayout", err)
		return
	}
	s.writeJSON(w, http.StatusOK, layout)
}

// ValidateRequest is the body of POST /forms/{id}/validate.
type ValidateRequest struct {
	Values map[string]any `json:"values"`
}

// ValidateResponse reports the outcome of a validation.
type ValidateResponse struct {
	Valid  bool                      `json:"valid"`
	Errors []*schema.ValidationError `json:"errors,omitempty"`
}

// ValidateForm handles the POST /forms/{id}/validate request.
func (s *Server) ValidateForm(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("ValidateForm: Invalid request body", "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.Engine.Validate(r.Context(), chi.URLParam(r, "id"), body.Values)
	if fieldErrs := schema.FieldErrors(err); len(fieldErrs) > 0 {
		s.writeJSON(w, http.StatusUnprocessableEntity, ValidateResponse{Valid: false, Errors: fieldErrs})
		return
	}
	if err != nil {
		s.writeEngineError(w, "ValidateForm", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

// GroupRequest is the body of POST /group.
// Omitting pairs applies the engine's default pairs.
type GroupRequest struct {
	Fields []domain.Field `json:"fields"`
	Pairs  [][]string     `json:"pairs"`
}

// GroupFields handles the POST /group request.
func (s *Server) GroupFields(w http.ResponseWriter, r *http.Request) {
	var body GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("GroupFields: Invalid request body", "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pairs, err := toPairs(body.Pairs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, s.Engine.Group(body.Fields, pairs))
}

func toPairs(raw [][]string) ([]grouping.Pair, error) {
	if raw == nil {
		return nil, nil
	}
	pairs := make([]grouping.Pair, 0, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, fmt.Errorf("pair %d has %d keys, expected 2", i, len(p))
		}
		pairs = append(pairs, grouping.Pair{p[0], p[1]})
	}
	return pairs, nil
}

// -- Helpers --

func (s *Server) writeEngineError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrFormNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.Logger.Error(op+" failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s error: %v", op, err))
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response failed", "error", err)
	}
}
