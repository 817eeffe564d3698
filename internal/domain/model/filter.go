package model

import (
	"slices"
	"strings"
)

// YearRange is an inclusive [Min, Max] span of calendar years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool { return year >= r.Min && year <= r.Max }

// Within reports whether r lies entirely inside outer.
func (r YearRange) Within(outer YearRange) bool {
	return r.Min >= outer.Min && r.Max <= outer.Max
}

// FilterParams narrows a Dataset by year span and host country.
type FilterParams struct {
	Years     YearRange
	countries map[string]struct{}
}

// NewFilterParams builds filter parameters. Blank country names are dropped;
// an empty country list is valid and selects nothing.
func NewFilterParams(years YearRange, countries []string) FilterParams {
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return FilterParams{Years: years, countries: set}
}

// Selected reports whether name is one of the selected countries.
func (p FilterParams) Selected(name string) bool {
	_, ok := p.countries[name]
	return ok
}

// Countries returns the selected country names in sorted order.
func (p FilterParams) Countries() []string {
	out := make([]string, 0, len(p.countries))
	for c := range p.countries {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Matches reports whether m satisfies both the year and country predicates.
func (p FilterParams) Matches(m Match) bool {
	return p.Years.Contains(m.Year()) && p.Selected(m.Country)
}

// FilterRequest is the raw, unvalidated filter as supplied by a caller.
// Nil years fall back to the dataset bounds; CountriesSet distinguishes an
// explicitly empty selection from an omitted one.
type FilterRequest struct {
	From         *int
	To           *int
	Countries    []string
	CountriesSet bool
}

// FilterOptions describes the values a filter control may offer.
type FilterOptions struct {
	Years            YearRange `json:"years"`
	Countries        []string  `json:"countries"`
	DefaultYears     YearRange `json:"default_years"`
	DefaultCountries []string  `json:"default_countries"`
}
