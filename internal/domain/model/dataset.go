package model

import (
	"iter"
	"slices"
)

// Dataset is the immutable, in-memory table of matches loaded at startup.
// It is safe for concurrent readers; nothing mutates it after NewDataset.
type Dataset struct {
	matches   []Match
	countries []string
	known     map[string]struct{}
	years     YearRange
}

// NewDataset copies matches into a new Dataset and precomputes the distinct
// country list and the observed year bounds.
func NewDataset(matches []Match) *Dataset {
	d := &Dataset{
		matches: slices.Clone(matches),
		known:   make(map[string]struct{}),
	}
	for i, m := range d.matches {
		if _, ok := d.known[m.Country]; !ok {
			d.known[m.Country] = struct{}{}
			d.countries = append(d.countries, m.Country)
		}
		y := m.Year()
		if i == 0 || y < d.years.Min {
			d.years.Min = y
		}
		if i == 0 || y > d.years.Max {
			d.years.Max = y
		}
	}
	slices.Sort(d.countries)
	return d
}

// Len returns the number of matches.
func (d *Dataset) Len() int { return len(d.matches) }

// At returns the i-th match in file order.
func (d *Dataset) At(i int) Match { return d.matches[i] }

// All yields every match in file order.
func (d *Dataset) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for _, m := range d.matches {
			if !yield(m) {
				return
			}
		}
	}
}

// Countries returns the sorted distinct host countries.
func (d *Dataset) Countries() []string { return slices.Clone(d.countries) }

// HasCountry reports whether any match was hosted in name.
func (d *Dataset) HasCountry(name string) bool {
	_, ok := d.known[name]
	return ok
}

// YearBounds returns the earliest and latest years present. The zero range is
// returned for an empty dataset.
func (d *Dataset) YearBounds() YearRange { return d.years }
