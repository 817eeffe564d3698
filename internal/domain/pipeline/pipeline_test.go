package pipeline_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/internal/domain/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

func match(year int, country, home, away string, hs, as int, tournament string) model.Match {
	return model.Match{
		Date:       time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		HomeTeam:   home,
		AwayTeam:   away,
		HomeScore:  hs,
		AwayScore:  as,
		Tournament: tournament,
		Country:    country,
	}
}

func params(min, max int, countries ...string) model.FilterParams {
	return model.NewFilterParams(model.YearRange{Min: min, Max: max}, countries)
}

func sampleDataset() *model.Dataset {
	return model.NewDataset([]model.Match{
		match(1998, "France", "France", "Brazil", 3, 0, "FIFA World Cup"),
		match(2000, "Brazil", "Brazil", "Spain", 3, 1, "Friendly"),
		match(2001, "Spain", "Spain", "Argentina", 2, 2, "Friendly"),
		match(2001, "India", "India", "Nepal", 0, 1, "SAFF Cup"),
		match(2002, "Spain", "Spain", "Brazil", 1, 4, "Friendly"),
		match(2002, "Brazil", "Germany", "Italy", 5, 2, "Copa"),
		match(2005, "Argentina", "Argentina", "Chile", 1, 0, "Copa América"),
		match(2010, "South Africa", "Spain", "Netherlands", 1, 0, "FIFA World Cup"),
	})
}

func TestRunExampleScenario(t *testing.T) {
	Convey("Given the two-match example dataset", t, func() {
		ds := model.NewDataset([]model.Match{
			match(2000, "Brazil", "Brazil", "Spain", 3, 1, "Friendly"),
			match(2001, "Spain", "Spain", "Argentina", 2, 2, "Friendly"),
		})
		agg := pipeline.New()

		Convey("When filtering 2000-2001 for Brazil and Spain", func() {
			res := agg.Run(ds, params(2000, 2001, "Brazil", "Spain"))

			Convey("Then both records are selected", func() {
				So(len(res.Matches), ShouldEqual, 2)
				So(res.Empty(), ShouldBeFalse)
			})

			Convey("And the KPIs match the hand-computed values", func() {
				So(res.KPIs.TotalMatches, ShouldEqual, 2)
				So(res.KPIs.TotalGoals, ShouldEqual, 8)
				So(res.KPIs.AvgGoalsPerMatch, ShouldResemble, model.Defined(4.0))
				So(res.KPIs.AvgHomeScore, ShouldResemble, model.Defined(2.5))
				So(res.KPIs.AvgAwayScore, ShouldResemble, model.Defined(1.5))
				So(res.KPIs.Undefined(), ShouldBeEmpty)
			})

			Convey("And the home/away outcome split is 1 home win and 1 draw", func() {
				So(res.HomeAway, ShouldResemble, pipeline.HomeAway{HomeWins: 1, AwayWins: 0, Draws: 1})
			})

			Convey("And the selected-country record counts Spain twice", func() {
				// Brazil win + Spain loss, then Spain draw.
				So(res.SelectedRecord, ShouldResemble, pipeline.Record{Wins: 1, Losses: 1, Draws: 1})
			})

			Convey("And the series are grouped correctly", func() {
				So(res.MatchesPerYear, ShouldResemble, []pipeline.YearCount{{Year: 2000, Count: 1}, {Year: 2001, Count: 1}})
				So(res.Tournaments.Tournaments, ShouldResemble, []string{"Friendly"})
				So(res.Tournaments.HomeGoals, ShouldResemble, []int{5})
				So(res.Tournaments.AwayGoals, ShouldResemble, []int{3})
				So(res.TopMatches[0].Label, ShouldEqual, "Brazil vs Spain")
				So(res.TopMatches[1].Label, ShouldEqual, "Spain vs Argentina")
			})
		})
	})
}

func TestRunEmptySelection(t *testing.T) {
	Convey("Given a dataset and no selected countries", t, func() {
		res := pipeline.New().Run(sampleDataset(), params(1872, 2023))

		Convey("Then the subset is empty without error", func() {
			So(res.Matches, ShouldBeEmpty)
			So(res.Empty(), ShouldBeTrue)
		})

		Convey("And counts and sums degrade to zero", func() {
			So(res.KPIs.TotalMatches, ShouldEqual, 0)
			So(res.KPIs.TotalGoals, ShouldEqual, 0)
			So(res.HomeAway.Total(), ShouldEqual, 0)
			So(res.SelectedRecord.Total(), ShouldEqual, 0)
		})

		Convey("And the mean-based KPIs are undefined", func() {
			So(res.KPIs.AvgHomeScore.IsDefined(), ShouldBeFalse)
			So(res.KPIs.AvgAwayScore.IsDefined(), ShouldBeFalse)
			So(res.KPIs.AvgGoalsPerMatch.IsDefined(), ShouldBeFalse)
			So(res.KPIs.Undefined(), ShouldResemble, []string{"avg_home_score", "avg_away_score", "avg_goals_per_match"})
		})

		Convey("And every series is an empty, non-nil sequence", func() {
			So(res.MatchesPerYear, ShouldNotBeNil)
			So(res.MatchesPerYear, ShouldBeEmpty)
			So(res.Tournaments.Tournaments, ShouldNotBeNil)
			So(res.Tournaments.Len(), ShouldEqual, 0)
			So(res.TopMatches, ShouldNotBeNil)
			So(res.TopMatches, ShouldBeEmpty)
		})
	})

	Convey("Given a nil dataset", t, func() {
		So(pipeline.Filter(nil, params(0, 3000, "Spain")), ShouldBeEmpty)
	})
}

func TestFilterSoundAndComplete(t *testing.T) {
	Convey("Given a dataset and a range of filters", t, func() {
		ds := sampleDataset()
		filters := []model.FilterParams{
			params(2000, 2002, "Spain", "Brazil"),
			params(2001, 2001, "Spain"),
			params(1990, 2023, "Spain", "Brazil", "India", "France", "Argentina", "South Africa"),
			params(2011, 2023, "Spain"),
			params(1998, 1998, "Nowhere"),
		}

		for i, p := range filters {
			Convey(fmt.Sprintf("When applying filter #%d", i), func() {
				subset := pipeline.Filter(ds, p)

				Convey("Then every selected match satisfies both predicates", func() {
					for _, m := range subset {
						So(p.Years.Contains(m.Year()), ShouldBeTrue)
						So(p.Selected(m.Country), ShouldBeTrue)
					}
				})

				Convey("And no qualifying match is left out", func() {
					want := 0
					for m := range ds.All() {
						if p.Years.Contains(m.Year()) && p.Selected(m.Country) {
							want++
						}
					}
					So(len(subset), ShouldEqual, want)
				})

				Convey("And total_matches equals the subset size", func() {
					So(pipeline.ComputeKPIs(subset).TotalMatches, ShouldEqual, len(subset))
				})

				Convey("And total_goals equals the sum of both score columns", func() {
					home, away := 0, 0
					for _, m := range subset {
						home += m.HomeScore
						away += m.AwayScore
					}
					So(pipeline.ComputeKPIs(subset).TotalGoals, ShouldEqual, home+away)
				})
			})
		}
	})
}

func TestRunIsIdempotent(t *testing.T) {
	Convey("Given the same dataset and parameters", t, func() {
		ds := sampleDataset()
		p := params(1990, 2023, "Spain", "Brazil", "Argentina")
		agg := pipeline.New()

		Convey("When running the pipeline twice", func() {
			a := agg.Run(ds, p)
			b := agg.Run(ds, p)

			Convey("Then the outputs are identical", func() {
				So(reflect.DeepEqual(a, b), ShouldBeTrue)
			})
		})
	})
}

func TestMatchesPerYear(t *testing.T) {
	Convey("Given matches spread over years in arbitrary order", t, func() {
		ms := []model.Match{
			match(2005, "X", "a", "b", 0, 0, "t"),
			match(1999, "X", "a", "b", 0, 0, "t"),
			match(2005, "X", "a", "b", 0, 0, "t"),
			match(2001, "X", "a", "b", 0, 0, "t"),
		}

		Convey("Then counts are grouped and ascending by year", func() {
			So(pipeline.MatchesPerYear(ms), ShouldResemble, []pipeline.YearCount{
				{Year: 1999, Count: 1},
				{Year: 2001, Count: 1},
				{Year: 2005, Count: 2},
			})
		})
	})
}

func TestTournamentScores(t *testing.T) {
	Convey("Given matches across several tournaments", t, func() {
		ms := []model.Match{
			match(2000, "X", "a", "b", 4, 3, "World Cup"),
			match(2000, "X", "a", "b", 1, 0, "Friendly"),
			match(2000, "X", "a", "b", 0, 1, "Friendly"),
			match(2000, "X", "a", "b", 2, 0, "Copa"),
			match(2000, "X", "a", "b", 1, 1, "Baltic Cup"),
		}
		tb := pipeline.TournamentScores(ms)

		Convey("Then groups are ordered by combined goals ascending", func() {
			So(tb.Tournaments, ShouldResemble, []string{"Baltic Cup", "Copa", "Friendly", "World Cup"})
			for i := 1; i < tb.Len(); i++ {
				So(tb.Total(i-1), ShouldBeLessThanOrEqualTo, tb.Total(i))
			}
		})

		Convey("And home and away sums are parallel to the names", func() {
			So(tb.HomeGoals, ShouldResemble, []int{1, 2, 1, 4})
			So(tb.AwayGoals, ShouldResemble, []int{1, 0, 1, 3})
		})
	})
}

func TestTopScoring(t *testing.T) {
	Convey("Given more than ten matches with tied totals", t, func() {
		var ms []model.Match
		for i := 0; i < 14; i++ {
			ms = append(ms, match(2000, "X", fmt.Sprintf("H%02d", i), fmt.Sprintf("A%02d", i), i%3, 1, "t"))
		}

		top := pipeline.TopScoring(ms, pipeline.DefaultTopN)

		Convey("Then at most ten matches are returned", func() {
			So(len(top), ShouldEqual, 10)
		})

		Convey("And they are sorted by total descending", func() {
			for i := 1; i < len(top); i++ {
				So(top[i-1].TotalScore, ShouldBeGreaterThanOrEqualTo, top[i].TotalScore)
			}
		})

		Convey("And ties keep their original order", func() {
			// totals of 3 come from i = 2, 5, 8, 11
			So(top[0].Label, ShouldEqual, "H02 vs A02")
			So(top[1].Label, ShouldEqual, "H05 vs A05")
			So(top[2].Label, ShouldEqual, "H08 vs A08")
			So(top[3].Label, ShouldEqual, "H11 vs A11")
			So(top[4].Label, ShouldEqual, "H01 vs A01")
		})

		Convey("And the input slice is left untouched", func() {
			So(ms[0].HomeTeam, ShouldEqual, "H00")
		})
	})

	Convey("Given fewer matches than the limit", t, func() {
		ms := []model.Match{match(2000, "X", "a", "b", 1, 2, "t")}
		top := pipeline.TopScoring(ms, 10)
		So(len(top), ShouldEqual, 1)
		So(top[0], ShouldResemble, pipeline.TopMatch{
			Label: "a vs b", Date: "2000-06-01", HomeTeam: "a", AwayTeam: "b",
			HomeScore: 1, AwayScore: 2, TotalScore: 3,
		})
	})

	Convey("Given a custom limit", t, func() {
		agg := pipeline.New(pipeline.WithTopN(3))
		So(agg.TopN(), ShouldEqual, 3)
		res := agg.Run(sampleDataset(), params(1990, 2023, "Spain", "Brazil", "France"))
		So(len(res.TopMatches), ShouldEqual, 3)
		So(res.TopMatches[0].TotalScore, ShouldEqual, 7)
	})

	Convey("Given an invalid limit option", t, func() {
		So(pipeline.New(pipeline.WithTopN(0)).TopN(), ShouldEqual, pipeline.DefaultTopN)
	})
}

func TestSelectedRecord(t *testing.T) {
	Convey("Given matches involving selected and unselected teams", t, func() {
		ms := []model.Match{
			match(2000, "X", "Spain", "Brazil", 2, 1, "t"), // both selected: Spain W, Brazil L
			match(2000, "X", "Spain", "Chile", 0, 0, "t"),  // Spain D
			match(2000, "X", "Chile", "Brazil", 0, 3, "t"), // Brazil W
			match(2000, "X", "Chile", "Peru", 5, 0, "t"),   // nobody selected
			match(2000, "X", "Brazil", "Spain", 1, 1, "t"), // both selected: two draws
		}
		p := params(2000, 2000, "Spain", "Brazil")
		r := pipeline.SelectedRecord(ms, p)

		Convey("Then each selected side is judged independently", func() {
			So(r, ShouldResemble, pipeline.Record{Wins: 2, Losses: 1, Draws: 3})
		})

		Convey("And the tally equals the number of selected (match, side) pairs", func() {
			pairs := 0
			for _, m := range ms {
				if p.Selected(m.HomeTeam) {
					pairs++
				}
				if p.Selected(m.AwayTeam) {
					pairs++
				}
			}
			So(r.Total(), ShouldEqual, pairs)
		})
	})
}

func TestHomeAwayOutcomes(t *testing.T) {
	Convey("Given a mix of results", t, func() {
		ms := []model.Match{
			match(2000, "X", "a", "b", 2, 1, "t"),
			match(2000, "X", "a", "b", 0, 1, "t"),
			match(2000, "X", "a", "b", 0, 3, "t"),
			match(2000, "X", "a", "b", 2, 2, "t"),
		}

		Convey("Then outcomes are counted regardless of team selection", func() {
			h := pipeline.HomeAwayOutcomes(ms)
			So(h, ShouldResemble, pipeline.HomeAway{HomeWins: 1, AwayWins: 2, Draws: 1})
			So(h.Total(), ShouldEqual, len(ms))
		})
	})
}
