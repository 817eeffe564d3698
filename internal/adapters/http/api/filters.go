package api

import (
	"context"
	"net/http"

	"github.com/okian/matchboard/internal/domain/model"
)

// FiltersDependencies defines the interface for filter control data.
type FiltersDependencies interface {
	Filters(ctx context.Context) (model.FilterOptions, error)
}

// FiltersHandler handles filter option requests.
type FiltersHandler struct {
	deps FiltersDependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps FiltersDependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

// HandleGetFilters handles GET /api/filters requests.
func (h *FiltersHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_filters"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	opts, err := h.deps.Filters(r.Context())
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
