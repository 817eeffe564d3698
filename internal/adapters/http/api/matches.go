package api

import (
	"context"
	"net/http"

	"github.com/okian/matchboard/internal/adapters/export"
	"github.com/okian/matchboard/internal/domain/model"
)

// MatchesDependencies defines the interface for filtered row access.
type MatchesDependencies interface {
	FilterResolver
	Matches(ctx context.Context, p model.FilterParams) ([]model.Match, error)
}

type matchesResponse struct {
	Filter filterEcho   `json:"filter"`
	Total  int          `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
	Rows   []export.Row `json:"rows"`
}

// MatchesHandler handles filtered table requests.
type MatchesHandler struct {
	deps     MatchesDependencies
	maxLimit int
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchesDependencies, maxLimit int) *MatchesHandler {
	if maxLimit < 1 {
		maxLimit = DefaultMaxPageSize
	}
	return &MatchesHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetMatches handles GET /api/matches?offset=&limit= requests.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	offset, limit, err := parsePage(r.URL.Query(), defaultPageSize, h.maxLimit)
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	p, ok := resolveFilter(w, r, op, h.deps)
	if !ok {
		return
	}
	ms, err := h.deps.Matches(r.Context(), p)
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}

	start := min(offset, len(ms))
	end := min(start+limit, len(ms))
	writeJSON(w, http.StatusOK, matchesResponse{
		Filter: echo(p),
		Total:  len(ms),
		Offset: offset,
		Limit:  limit,
		Rows:   export.Rows(ms[start:end]),
	})
}
