// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/matchboard/internal/adapters/repository"
	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/pkg/logger"
)

// Page size bounds for GET /api/matches.
const (
	DefaultMaxPageSize = 500
	defaultPageSize    = 100
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	FiltersDependencies
	SummaryDependencies
	MatchesDependencies
	CountriesDependencies
	ExportDependencies
}

// FilterResolver turns raw query values into validated parameters.
type FilterResolver interface {
	ResolveParams(ctx context.Context, req model.FilterRequest) (model.FilterParams, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
	filtersHandler   *FiltersHandler
	summaryHandler   *SummaryHandler
	matchesHandler   *MatchesHandler
	countriesHandler *CountriesHandler
	exportHandler    *ExportHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxPageSize int
}

// WithMaxPageSize caps the limit accepted by GET /api/matches.
func WithMaxPageSize(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxPageSize = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxPageSize: DefaultMaxPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: newDashboardHandler(),
		filtersHandler:   NewFiltersHandler(deps),
		summaryHandler:   NewSummaryHandler(deps),
		matchesHandler:   NewMatchesHandler(deps, cfg.maxPageSize),
		countriesHandler: NewCountriesHandler(deps),
		exportHandler:    NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/filters", MetricsMiddleware(s.filtersHandler.HandleGetFilters, "filters"))
	mux.HandleFunc("/api/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/api/matches", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("/api/countries", MetricsMiddleware(s.countriesHandler.HandleGetCountries, "countries"))
	mux.HandleFunc("/api/export", MetricsMiddleware(s.exportHandler.HandleGetExport, "export"))
}

type errorResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err to a status and error code.
func writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	var uce *model.UnknownCountryError
	switch {
	case errors.As(err, &uce):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:        "unknown_country",
			Message:     Wrap(op, err).Error(),
			Suggestions: uce.Suggestions,
		})
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, model.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, "invalid_filter", Wrap(op, err))
	case errors.Is(err, repository.ErrDataLoad):
		logger.Get().Error(r.Context(), "dataset unavailable",
			logger.String("op", op), logger.String("requestId", RequestIDFrom(r.Context())), logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "dataset_unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		logger.Get().Error(r.Context(), "request failed",
			logger.String("op", op), logger.String("requestId", RequestIDFrom(r.Context())), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// resolveFilter parses and validates the filter query. On failure the error
// response has already been written and ok is false.
func resolveFilter(w http.ResponseWriter, r *http.Request, op string, deps FilterResolver) (p model.FilterParams, ok bool) {
	req, err := parseFilter(r.URL.Query())
	if err != nil {
		writeFailure(w, r, op, err)
		return p, false
	}
	p, err = deps.ResolveParams(r.Context(), req)
	if err != nil {
		writeFailure(w, r, op, err)
		return p, false
	}
	return p, true
}
