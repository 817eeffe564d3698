package model_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/matchboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMatch(t *testing.T) {
	convey.Convey("Given a match record", t, func() {
		m := model.Match{
			Date:       day(2000, time.March, 5),
			HomeTeam:   "Brazil",
			AwayTeam:   "Spain",
			HomeScore:  3,
			AwayScore:  1,
			Tournament: "Friendly",
			Country:    "Brazil",
		}

		convey.Convey("Then derived fields should be computed from it", func() {
			convey.So(m.Year(), convey.ShouldEqual, 2000)
			convey.So(m.TotalScore(), convey.ShouldEqual, 4)
			convey.So(m.Label(), convey.ShouldEqual, "Brazil vs Spain")
			convey.So(m.ISODate(), convey.ShouldEqual, "2000-03-05")
			convey.So(m.Outcome(), convey.ShouldEqual, model.HomeWin)
		})

		convey.Convey("When the away side scores more", func() {
			m.AwayScore = 5
			convey.So(m.Outcome(), convey.ShouldEqual, model.AwayWin)
		})

		convey.Convey("When both sides score equally", func() {
			m.AwayScore = 3
			convey.So(m.Outcome(), convey.ShouldEqual, model.Draw)
		})
	})
}

func TestDataset(t *testing.T) {
	convey.Convey("Given a dataset built from a few matches", t, func() {
		src := []model.Match{
			{Date: day(1990, time.June, 1), Country: "Spain"},
			{Date: day(1872, time.November, 30), Country: "Scotland"},
			{Date: day(2023, time.January, 2), Country: "Brazil"},
			{Date: day(2001, time.May, 2), Country: "Spain"},
		}
		ds := model.NewDataset(src)

		convey.Convey("Then countries should be distinct and sorted", func() {
			convey.So(ds.Countries(), convey.ShouldResemble, []string{"Brazil", "Scotland", "Spain"})
			convey.So(ds.HasCountry("Spain"), convey.ShouldBeTrue)
			convey.So(ds.HasCountry("India"), convey.ShouldBeFalse)
		})

		convey.Convey("And year bounds should span the observed years", func() {
			convey.So(ds.YearBounds(), convey.ShouldResemble, model.YearRange{Min: 1872, Max: 2023})
		})

		convey.Convey("And file order should be preserved", func() {
			convey.So(ds.Len(), convey.ShouldEqual, 4)
			convey.So(ds.At(1).Country, convey.ShouldEqual, "Scotland")
			var years []int
			for m := range ds.All() {
				years = append(years, m.Year())
			}
			convey.So(years, convey.ShouldResemble, []int{1990, 1872, 2023, 2001})
		})

		convey.Convey("When the source slice is modified afterwards", func() {
			src[0].Country = "Mutated"
			convey.So(ds.At(0).Country, convey.ShouldEqual, "Spain")
		})

		convey.Convey("When the caller modifies the returned country list", func() {
			c := ds.Countries()
			c[0] = "Mutated"
			convey.So(ds.Countries()[0], convey.ShouldEqual, "Brazil")
		})
	})

	convey.Convey("Given an empty dataset", t, func() {
		ds := model.NewDataset(nil)
		convey.So(ds.Len(), convey.ShouldEqual, 0)
		convey.So(ds.Countries(), convey.ShouldBeEmpty)
		convey.So(ds.YearBounds(), convey.ShouldResemble, model.YearRange{})
	})
}

func TestFilterParams(t *testing.T) {
	convey.Convey("Given filter parameters", t, func() {
		p := model.NewFilterParams(model.YearRange{Min: 2000, Max: 2001}, []string{"Spain", " Brazil ", ""})

		convey.Convey("Then blank names are dropped and others trimmed", func() {
			convey.So(p.Countries(), convey.ShouldResemble, []string{"Brazil", "Spain"})
		})

		convey.Convey("And both predicates must hold for a match", func() {
			convey.So(p.Matches(model.Match{Date: day(2000, 1, 1), Country: "Spain"}), convey.ShouldBeTrue)
			convey.So(p.Matches(model.Match{Date: day(2001, 12, 31), Country: "Brazil"}), convey.ShouldBeTrue)
			convey.So(p.Matches(model.Match{Date: day(2002, 1, 1), Country: "Spain"}), convey.ShouldBeFalse)
			convey.So(p.Matches(model.Match{Date: day(2000, 1, 1), Country: "India"}), convey.ShouldBeFalse)
		})

		convey.Convey("When no countries are selected", func() {
			empty := model.NewFilterParams(model.YearRange{Min: 0, Max: 3000}, nil)
			convey.So(empty.Countries(), convey.ShouldBeEmpty)
			convey.So(empty.Matches(model.Match{Date: day(2000, 1, 1), Country: "Spain"}), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a year range", t, func() {
		r := model.YearRange{Min: 1990, Max: 2000}
		convey.So(r.Contains(1990), convey.ShouldBeTrue)
		convey.So(r.Contains(2000), convey.ShouldBeTrue)
		convey.So(r.Contains(2001), convey.ShouldBeFalse)
		convey.So(r.Within(model.YearRange{Min: 1872, Max: 2023}), convey.ShouldBeTrue)
		convey.So(r.Within(model.YearRange{Min: 1995, Max: 2023}), convey.ShouldBeFalse)
	})
}

func TestMeasure(t *testing.T) {
	convey.Convey("Given measures", t, func() {
		convey.Convey("When the count is zero", func() {
			m := model.Mean(0, 0)

			convey.Convey("Then the measure is undefined, not zero", func() {
				convey.So(m.IsDefined(), convey.ShouldBeFalse)
				convey.So(m, convey.ShouldNotResemble, model.Defined(0))
				convey.So(math.IsNaN(m.Float64()), convey.ShouldBeTrue)
				convey.So(m.String(), convey.ShouldEqual, "n/a")
			})

			convey.Convey("And it encodes as JSON null", func() {
				b, err := json.Marshal(m)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, "null")
			})
		})

		convey.Convey("When the count is positive", func() {
			m := model.Mean(8, 2)
			v, ok := m.Value()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 4.0)
			convey.So(m.String(), convey.ShouldEqual, "4.00")

			b, err := json.Marshal(m)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "4")
		})

		convey.Convey("When decoding JSON", func() {
			var holder struct {
				A model.Measure `json:"a"`
				B model.Measure `json:"b"`
			}
			err := json.Unmarshal([]byte(`{"a":1.5,"b":null}`), &holder)
			convey.So(err, convey.ShouldBeNil)
			convey.So(holder.A, convey.ShouldResemble, model.Defined(1.5))
			convey.So(holder.B.IsDefined(), convey.ShouldBeFalse)
		})
	})
}

func TestUnknownCountryError(t *testing.T) {
	convey.Convey("Given an unknown country error", t, func() {
		err := &model.UnknownCountryError{Name: "Brasil", Suggestions: []string{"Brazil"}}

		convey.Convey("Then it matches the sentinel kind", func() {
			convey.So(errors.Is(err, model.ErrUnknownCountry), convey.ShouldBeTrue)
			convey.So(errors.Is(err, model.ErrInvalidFilter), convey.ShouldBeFalse)
		})

		convey.Convey("And its message lists suggestions", func() {
			convey.So(err.Error(), convey.ShouldEqual, `unknown country "Brasil"; did you mean Brazil?`)
		})
	})
}
