// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/pcforge/internal/adapters/repository"
	service "github.com/okian/pcforge/internal/app"
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/scoring"
	"github.com/okian/pcforge/internal/domain/specs"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Evaluator exposes the scoring and compatibility engine.
type Evaluator interface {
	Evaluate(ctx context.Context, category model.Category, in specs.Specs) (scoring.Result, bool)
	CheckSelection(ctx context.Context, sel model.Selection) service.CheckResult
}

// Catalog exposes component CRUD.
type Catalog interface {
	CreateComponent(ctx context.Context, c model.Component) (model.Component, error)
	UpdateComponent(ctx context.Context, c model.Component) (model.Component, error)
	GetComponent(ctx context.Context, id string) (model.Component, error)
	DeleteComponent(ctx context.Context, id string) error
	ListComponents(ctx context.Context, q repository.Query, compatibleWith string) (repository.Page, error)
}

// Builds exposes build management.
type Builds interface {
	CreateBuild(ctx context.Context, name, fromID string) (service.BuildReport, error)
	GetBuild(ctx context.Context, id string) (service.BuildReport, error)
	ListBuilds(ctx context.Context) ([]*model.Build, error)
	DeleteBuild(ctx context.Context, id string) error
	AddToBuild(ctx context.Context, buildID, componentID string) (service.BuildReport, error)
	RemoveFromBuild(ctx context.Context, buildID string, category model.Category) (service.BuildReport, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Evaluator
	Catalog
	Builds
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	evaluateHandler  *EvaluateHandler
	componentHandler *ComponentHandler
	buildHandler     *BuildHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		evaluateHandler:  NewEvaluateHandler(deps),
		componentHandler: NewComponentHandler(deps),
		buildHandler:     NewBuildHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /evaluate", MetricsMiddleware(s.evaluateHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("POST /compatibility", MetricsMiddleware(s.evaluateHandler.HandleCompatibility, "compatibility"))

	mux.HandleFunc("GET /components", MetricsMiddleware(s.componentHandler.HandleList, "components"))
	mux.HandleFunc("POST /components", MetricsMiddleware(s.componentHandler.HandleCreate, "components"))
	mux.HandleFunc("GET /components/{id}", MetricsMiddleware(s.componentHandler.HandleGet, "component"))
	mux.HandleFunc("PUT /components/{id}", MetricsMiddleware(s.componentHandler.HandleUpdate, "component"))
	mux.HandleFunc("DELETE /components/{id}", MetricsMiddleware(s.componentHandler.HandleDelete, "component"))

	mux.HandleFunc("GET /builds", MetricsMiddleware(s.buildHandler.HandleList, "builds"))
	mux.HandleFunc("POST /builds", MetricsMiddleware(s.buildHandler.HandleCreate, "builds"))
	mux.HandleFunc("GET /builds/{id}", MetricsMiddleware(s.buildHandler.HandleGet, "build"))
	mux.HandleFunc("DELETE /builds/{id}", MetricsMiddleware(s.buildHandler.HandleDelete, "build"))
	mux.HandleFunc("PUT /builds/{id}/components", MetricsMiddleware(s.buildHandler.HandleAdd, "build_components"))
	mux.HandleFunc("DELETE /builds/{id}/components/{category}", MetricsMiddleware(s.buildHandler.HandleRemove, "build_components"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a single JSON document from r into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: invalid JSON: %w", ErrBadRequest, err)
	}
	return nil
}
