package pipeline

import "github.com/okian/matchboard/internal/domain/model"

// KPIs are the summary scalars of a filtered subset. The three means are
// undefined when the subset is empty.
type KPIs struct {
	TotalMatches     int           `json:"total_matches"`
	AvgHomeScore     model.Measure `json:"avg_home_score"`
	AvgAwayScore     model.Measure `json:"avg_away_score"`
	TotalGoals       int           `json:"total_goals"`
	AvgGoalsPerMatch model.Measure `json:"avg_goals_per_match"`
}

// Undefined returns the names of the KPIs that carry no value.
func (k KPIs) Undefined() []string {
	var out []string
	if !k.AvgHomeScore.IsDefined() {
		out = append(out, "avg_home_score")
	}
	if !k.AvgAwayScore.IsDefined() {
		out = append(out, "avg_away_score")
	}
	if !k.AvgGoalsPerMatch.IsDefined() {
		out = append(out, "avg_goals_per_match")
	}
	return out
}

// YearCount is one point of the matches-per-year line.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TournamentBreakdown holds parallel sequences for a stacked bar chart.
type TournamentBreakdown struct {
	Tournaments []string `json:"tournaments"`
	HomeGoals   []int    `json:"home_goals"`
	AwayGoals   []int    `json:"away_goals"`
}

// Len returns the number of tournaments.
func (t TournamentBreakdown) Len() int { return len(t.Tournaments) }

// Total returns the combined goals of the i-th tournament.
func (t TournamentBreakdown) Total(i int) int { return t.HomeGoals[i] + t.AwayGoals[i] }

// TopMatch is one column of the highest-scoring grid.
type TopMatch struct {
	Label      string `json:"label"`
	Date       string `json:"date"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	TotalScore int    `json:"total_score"`
}

// Record is a wins/losses/draws tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (r *Record) add(own, other int) {
	switch {
	case own > other:
		r.Wins++
	case own < other:
		r.Losses++
	default:
		r.Draws++
	}
}

// Total returns the number of judged sides.
func (r Record) Total() int { return r.Wins + r.Losses + r.Draws }

// HomeAway counts results by winning side.
type HomeAway struct {
	HomeWins int `json:"home_wins"`
	AwayWins int `json:"away_wins"`
	Draws    int `json:"draws"`
}

// Total returns the number of matches counted.
func (h HomeAway) Total() int { return h.HomeWins + h.AwayWins + h.Draws }

// Result is everything one pipeline run produces.
type Result struct {
	Params         model.FilterParams  `json:"-"`
	Matches        []model.Match       `json:"-"`
	KPIs           KPIs                `json:"kpis"`
	MatchesPerYear []YearCount         `json:"matches_per_year"`
	Tournaments    TournamentBreakdown `json:"tournaments"`
	TopMatches     []TopMatch          `json:"top_matches"`
	SelectedRecord Record              `json:"selected_record"`
	HomeAway       HomeAway            `json:"home_away"`
}

// Empty reports whether the filter selected no matches.
func (r *Result) Empty() bool { return r.KPIs.TotalMatches == 0 }
