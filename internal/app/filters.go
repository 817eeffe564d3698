package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/pkg/metrics"
)

// yearWindow is the validated form of a requested year range.
type yearWindow struct {
	From    int `json:"from" validate:"gtefield=MinYear,ltefield=To"`
	To      int `json:"to" validate:"ltefield=MaxYear"`
	MinYear int `json:"-"`
	MaxYear int `json:"-"`
}

var (
	validateOnce sync.Once //nolint:gochecknoglobals // lazily built validator
	validate     *validator.Validate
)

func filterValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Filters returns the year bounds, the distinct countries and the default
// parameters offered on first render.
func (s *Service) Filters(ctx context.Context) (model.FilterOptions, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return model.FilterOptions{}, err
	}
	years := ds.YearBounds()
	return model.FilterOptions{
		Years:            years,
		Countries:        ds.Countries(),
		DefaultYears:     years,
		DefaultCountries: s.defaultSelection(ds),
	}, nil
}

// DefaultParams returns the parameters used when a caller supplies none.
func (s *Service) DefaultParams(ctx context.Context) (model.FilterParams, error) {
	return s.ResolveParams(ctx, model.FilterRequest{})
}

// defaultSelection keeps the configured defaults that exist in ds, in
// configured order.
func (s *Service) defaultSelection(ds *model.Dataset) []string {
	out := make([]string, 0, len(s.defaultCountries))
	for _, c := range s.defaultCountries {
		if ds.HasCountry(c) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// ResolveParams fills omitted fields of req from the dataset bounds and the
// configured defaults, then validates the result. Errors match
// model.ErrInvalidFilter or model.ErrUnknownCountry.
func (s *Service) ResolveParams(ctx context.Context, req model.FilterRequest) (model.FilterParams, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return model.FilterParams{}, err
	}
	bounds := ds.YearBounds()

	win := yearWindow{From: bounds.Min, To: bounds.Max, MinYear: bounds.Min, MaxYear: bounds.Max}
	if req.From != nil {
		win.From = *req.From
	}
	if req.To != nil {
		win.To = *req.To
	}
	if err := checkWindow(win); err != nil {
		metrics.RecordFilterRejection("invalid_filter")
		return model.FilterParams{}, err
	}

	countries := s.defaultSelection(ds)
	if req.CountriesSet {
		countries = req.Countries
	}
	for _, c := range sortedTrimmed(countries) {
		if !ds.HasCountry(c) {
			metrics.RecordFilterRejection("unknown_country")
			return model.FilterParams{}, &model.UnknownCountryError{
				Name:        c,
				Suggestions: suggest(c, ds.Countries(), s.suggestLimit),
			}
		}
	}

	return model.NewFilterParams(model.YearRange{Min: win.From, Max: win.To}, countries), nil
}

func checkWindow(win yearWindow) error {
	err := filterValidator().Struct(win)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", model.ErrInvalidFilter, err)
	}
	switch fe := verrs[0]; {
	case fe.Field() == "from" && fe.Tag() == "ltefield":
		return fmt.Errorf("%w: from %d is after to %d", model.ErrInvalidFilter, win.From, win.To)
	case fe.Field() == "from":
		return fmt.Errorf("%w: from %d is before the first year %d", model.ErrInvalidFilter, win.From, win.MinYear)
	default:
		return fmt.Errorf("%w: to %d is after the last year %d", model.ErrInvalidFilter, win.To, win.MaxYear)
	}
}

func sortedTrimmed(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

// SuggestCountries returns up to limit countries matching q. Subsequence
// matches rank first; near misses by edit distance follow. An empty query
// lists countries alphabetically.
func (s *Service) SuggestCountries(ctx context.Context, q string, limit int) ([]string, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLookupLimit
	}
	countries := ds.Countries()
	q = strings.TrimSpace(q)
	if q == "" {
		return countries[:min(limit, len(countries))], nil
	}
	return suggest(q, countries, limit), nil
}

func suggest(q string, targets []string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(q, targets)
	sort.Sort(ranks)

	out := make([]string, 0, limit)
	for _, r := range ranks {
		if len(out) == limit {
			return out
		}
		out = append(out, r.Target)
	}

	type near struct {
		name string
		dist int
	}
	lq := strings.ToLower(q)
	maxDist := max(2, len([]rune(q))/3)
	var nearby []near
	for _, t := range targets {
		if slices.Contains(out, t) {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lq, strings.ToLower(t)); d <= maxDist {
			nearby = append(nearby, near{name: t, dist: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	for _, n := range nearby {
		if len(out) == limit {
			break
		}
		out = append(out, n.name)
	}
	return out
}
