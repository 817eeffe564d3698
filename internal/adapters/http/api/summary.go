package api

import (
	"context"
	"net/http"

	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/internal/domain/pipeline"
)

// SummaryDependencies defines the interface for pipeline runs.
type SummaryDependencies interface {
	FilterResolver
	Summary(ctx context.Context, p model.FilterParams) (*pipeline.Result, error)
}

// summaryResponse is the KPI bundle and chart series for one filter.
type summaryResponse struct {
	Filter filterEcho `json:"filter"`
	Empty  bool       `json:"empty"`
	*pipeline.Result
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /api/summary?from=&to=&country= requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	p, ok := resolveFilter(w, r, op, h.deps)
	if !ok {
		return
	}
	res, err := h.deps.Summary(r.Context(), p)
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Filter: echo(p), Empty: res.Empty(), Result: res})
}
