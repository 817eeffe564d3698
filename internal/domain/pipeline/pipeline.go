// Package pipeline turns a Dataset and filter parameters into the KPIs and
// chart-ready series shown on the dashboard.
//
// Run is a pure function of its inputs: the same dataset and parameters always
// produce identical results, and no state survives between calls.
package pipeline

import (
	"cmp"
	"slices"

	"github.com/okian/matchboard/internal/domain/model"
)

// DefaultTopN is the number of highest-scoring matches reported.
const DefaultTopN = 10

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithTopN sets how many highest-scoring matches to keep.
func WithTopN(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.topN = n
		}
	}
}

// Aggregator runs the filter-aggregate pipeline.
type Aggregator struct {
	topN int
}

// New constructs an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{topN: DefaultTopN}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TopN returns the configured number of top matches.
func (a *Aggregator) TopN() int { return a.topN }

// Run filters ds by p and computes every aggregate over the subset.
func (a *Aggregator) Run(ds *model.Dataset, p model.FilterParams) *Result {
	subset := Filter(ds, p)
	return &Result{
		Params:         p,
		Matches:        subset,
		KPIs:           ComputeKPIs(subset),
		MatchesPerYear: MatchesPerYear(subset),
		Tournaments:    TournamentScores(subset),
		TopMatches:     TopScoring(subset, a.topN),
		SelectedRecord: SelectedRecord(subset, p),
		HomeAway:       HomeAwayOutcomes(subset),
	}
}

// Filter returns the matches of ds that satisfy p, in dataset order.
func Filter(ds *model.Dataset, p model.FilterParams) []model.Match {
	out := make([]model.Match, 0)
	if ds == nil {
		return out
	}
	for m := range ds.All() {
		if p.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// ComputeKPIs derives the five summary scalars.
func ComputeKPIs(ms []model.Match) KPIs {
	var home, away int
	for _, m := range ms {
		home += m.HomeScore
		away += m.AwayScore
	}
	n := len(ms)
	total := home + away
	return KPIs{
		TotalMatches:     n,
		AvgHomeScore:     model.Mean(home, n),
		AvgAwayScore:     model.Mean(away, n),
		TotalGoals:       total,
		AvgGoalsPerMatch: model.Mean(total, n),
	}
}

// MatchesPerYear counts matches by year, ascending.
func MatchesPerYear(ms []model.Match) []YearCount {
	counts := make(map[int]int)
	for _, m := range ms {
		counts[m.Year()]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	slices.SortFunc(out, func(a, b YearCount) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// TournamentScores sums home and away goals per tournament and orders the
// groups by combined goals, ascending. Groups with equal totals keep
// alphabetical order.
func TournamentScores(ms []model.Match) TournamentBreakdown {
	type sums struct{ home, away int }
	groups := make(map[string]*sums)
	for _, m := range ms {
		g, ok := groups[m.Tournament]
		if !ok {
			g = &sums{}
			groups[m.Tournament] = g
		}
		g.home += m.HomeScore
		g.away += m.AwayScore
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)
	slices.SortStableFunc(names, func(a, b string) int {
		ga, gb := groups[a], groups[b]
		return cmp.Compare(ga.home+ga.away, gb.home+gb.away)
	})

	out := TournamentBreakdown{
		Tournaments: names,
		HomeGoals:   make([]int, len(names)),
		AwayGoals:   make([]int, len(names)),
	}
	for i, name := range names {
		out.HomeGoals[i] = groups[name].home
		out.AwayGoals[i] = groups[name].away
	}
	return out
}

// TopScoring returns up to n matches with the most goals, highest first.
// Matches with equal totals keep their input order.
func TopScoring(ms []model.Match, n int) []TopMatch {
	ranked := slices.Clone(ms)
	slices.SortStableFunc(ranked, func(a, b model.Match) int {
		return cmp.Compare(b.TotalScore(), a.TotalScore())
	})
	if len(ranked) > n {
		ranked = ranked[:max(n, 0)]
	}
	out := make([]TopMatch, len(ranked))
	for i, m := range ranked {
		out[i] = TopMatch{
			Label:      m.Label(),
			Date:       m.ISODate(),
			HomeTeam:   m.HomeTeam,
			AwayTeam:   m.AwayTeam,
			HomeScore:  m.HomeScore,
			AwayScore:  m.AwayScore,
			TotalScore: m.TotalScore(),
		}
	}
	return out
}

// SelectedRecord tallies results for every side whose team is one of the
// selected countries. Each side is judged on its own, so a match between two
// selected teams contributes twice.
func SelectedRecord(ms []model.Match, p model.FilterParams) Record {
	var r Record
	for _, m := range ms {
		if p.Selected(m.HomeTeam) {
			r.add(m.HomeScore, m.AwayScore)
		}
		if p.Selected(m.AwayTeam) {
			r.add(m.AwayScore, m.HomeScore)
		}
	}
	return r
}

// HomeAwayOutcomes counts home wins, away wins and draws.
func HomeAwayOutcomes(ms []model.Match) HomeAway {
	var h HomeAway
	for _, m := range ms {
		switch m.Outcome() {
		case model.HomeWin:
			h.HomeWins++
		case model.AwayWin:
			h.AwayWins++
		case model.Draw:
			h.Draws++
		}
	}
	return h
}
