package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/matchboard/internal/domain/model"
)

const fixtureCSV = `date,home_team,away_team,home_score,away_score,tournament,city,country,neutral
2000-06-10,Brazil,Spain,3,1,Friendly,Rio,Brazil,FALSE
2001-07-01,Spain,Argentina,1,1,Copa,Madrid,Spain,FALSE
2002-05-05,Argentina,Brazil,0,4,FIFA World Cup,Buenos Aires,Argentina,FALSE
`

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(&out, io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMatchReport(t *testing.T) {
	Convey("Given a results file", t, func() {
		dir := t.TempDir()
		data := filepath.Join(dir, "results.csv")
		So(os.WriteFile(data, []byte(fixtureCSV), 0o600), ShouldBeNil)
		t.Setenv("MATCHBOARD_DEFAULT_COUNTRIES", "Brazil,Spain,Argentina")

		Convey("When run with the configured defaults", func() {
			out, err := execute("--data", data)

			Convey("Then the full span and every default country are reported", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Years: 2000-2002")
				So(out, ShouldContainSubstring, "Argentina, Brazil, Spain")
				So(out, ShouldContainSubstring, "3.33")
			})
		})

		Convey("When one country and a year window are selected", func() {
			out, err := execute("--data", data, "--country", "Spain", "--from", "2001", "--to", "2001", "--top", "1")

			Convey("Then only that subset is reported", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Years: 2001-2001")
				So(out, ShouldContainSubstring, "Spain vs Argentina")
				So(out, ShouldNotContainSubstring, "Brazil vs Spain")
			})
		})

		Convey("When an export file is requested", func() {
			target := filepath.Join(dir, "subset.parquet")
			_, err := execute("--data", data, "--export", target)

			Convey("Then the file is written", func() {
				So(err, ShouldBeNil)
				info, statErr := os.Stat(target)
				So(statErr, ShouldBeNil)
				So(info.Size(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the window starts before the dataset", func() {
			_, err := execute("--data", data, "--from", "1990")

			Convey("Then the filter is rejected", func() {
				So(errors.Is(err, model.ErrInvalidFilter), ShouldBeTrue)
			})
		})

		Convey("When --top is not positive", func() {
			_, err := execute("--data", data, "--top", "0")

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "--top")
			})
		})

		Convey("When both --data and --server are given", func() {
			_, err := execute("--data", data, "--server", "http://localhost:9080")

			Convey("Then the flags are rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
