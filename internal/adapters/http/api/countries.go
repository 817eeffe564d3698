package api

import (
	"context"
	"net/http"
)

const maxCountriesLimit = 100

// CountriesDependencies defines the interface for country lookup.
type CountriesDependencies interface {
	SuggestCountries(ctx context.Context, q string, limit int) ([]string, error)
}

type countriesResponse struct {
	Query     string   `json:"query"`
	Countries []string `json:"countries"`
}

// CountriesHandler handles country lookup requests.
type CountriesHandler struct {
	deps CountriesDependencies
}

// NewCountriesHandler creates a new countries handler.
func NewCountriesHandler(deps CountriesDependencies) *CountriesHandler {
	return &CountriesHandler{deps: deps}
}

// HandleGetCountries handles GET /api/countries?q=&limit= requests.
func (h *CountriesHandler) HandleGetCountries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_countries"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	_, limit, err := parsePage(q, maxCountriesLimit, maxCountriesLimit)
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	names, err := h.deps.SuggestCountries(r.Context(), q.Get(paramQuery), limit)
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, countriesResponse{Query: q.Get(paramQuery), Countries: names})
}
