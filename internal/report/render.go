package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// Render writes every table of s to w. An empty selection prints the KPI
// table and a notice only.
func Render(w io.Writer, s *Summary) error {
	printHeader(w, s.Filter)

	steps := []func(io.Writer, *Summary) error{renderKPIs}
	if !s.Empty {
		steps = append(steps, renderYears, renderTournaments, renderTopMatches, renderOutcomes)
	}
	for _, step := range steps {
		fmt.Fprintln(w)
		if err := step(w, s); err != nil {
			return err
		}
	}
	if s.Empty {
		fmt.Fprintln(w, "\nNo matches for this filter.")
	}
	return nil
}

func printHeader(w io.Writer, f Filter) {
	countries := "(none)"
	if len(f.Countries) > 0 {
		countries = strings.Join(f.Countries, ", ")
	}
	fmt.Fprintf(w, "Years: %d-%d  |  Countries: %s\n", f.From, f.To, countries)
}

func renderKPIs(w io.Writer, s *Summary) error {
	k := s.KPIs
	t := newTable(w)
	t.Header("KPI", "VALUE")
	t.Append("Total matches", strconv.Itoa(k.TotalMatches))
	t.Append("Avg home score", k.AvgHomeScore.String())
	t.Append("Avg away score", k.AvgAwayScore.String())
	t.Append("Total goals", strconv.Itoa(k.TotalGoals))
	t.Append("Avg goals per match", k.AvgGoalsPerMatch.String())
	return t.Render()
}

func renderYears(w io.Writer, s *Summary) error {
	t := newTable(w)
	t.Header("YEAR", "MATCHES")
	for _, y := range s.MatchesPerYear {
		t.Append(strconv.Itoa(y.Year), strconv.Itoa(y.Count))
	}
	return t.Render()
}

func renderTournaments(w io.Writer, s *Summary) error {
	tb := s.Tournaments
	t := newTable(w)
	t.Header("TOURNAMENT", "HOME", "AWAY", "TOTAL")
	for i := range tb.Len() {
		t.Append(tb.Tournaments[i], strconv.Itoa(tb.HomeGoals[i]), strconv.Itoa(tb.AwayGoals[i]), strconv.Itoa(tb.Total(i)))
	}
	return t.Render()
}

func renderTopMatches(w io.Writer, s *Summary) error {
	t := newTable(w)
	t.Header("#", "DATE", "MATCH", "SCORE", "TOTAL")
	for i, m := range s.TopMatches {
		t.Append(
			strconv.Itoa(i+1),
			m.Date,
			m.Label,
			fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore),
			strconv.Itoa(m.TotalScore),
		)
	}
	return t.Render()
}

// renderOutcomes prints the selected-countries record next to the
// home/away split.
func renderOutcomes(w io.Writer, s *Summary) error {
	r, h := s.SelectedRecord, s.HomeAway
	t := newTable(w)
	t.Header("OUTCOME", "WINS", "LOSSES", "DRAWS", "TOTAL")
	t.Append("Selected countries", strconv.Itoa(r.Wins), strconv.Itoa(r.Losses), strconv.Itoa(r.Draws), strconv.Itoa(r.Total()))
	t.Append("Home side", strconv.Itoa(h.HomeWins), strconv.Itoa(h.AwayWins), strconv.Itoa(h.Draws), strconv.Itoa(h.Total()))
	return t.Render()
}
