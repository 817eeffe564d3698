package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/okian/matchboard/internal/domain/model"
)

// SheetName is the worksheet written by XLSX exports.
const SheetName = "matches"

// Header is the column order shared by every format.
var Header = []string{ //nolint:gochecknoglobals // read-only column list
	"date", "home_team", "away_team", "home_score", "away_score", "tournament", "country",
}

// Row is the flat, display-ready form of a match.
type Row struct {
	Date       string `parquet:"date,snappy" json:"date"`
	HomeTeam   string `parquet:"home_team,snappy,dict" json:"home_team"`
	AwayTeam   string `parquet:"away_team,snappy,dict" json:"away_team"`
	HomeScore  int32  `parquet:"home_score,snappy" json:"home_score"`
	AwayScore  int32  `parquet:"away_score,snappy" json:"away_score"`
	Tournament string `parquet:"tournament,snappy,dict" json:"tournament"`
	Country    string `parquet:"country,snappy,dict" json:"country"`
}

// NewRow formats m with an ISO date.
func NewRow(m model.Match) Row {
	return Row{
		Date:       m.ISODate(),
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		HomeScore:  int32(m.HomeScore), //nolint:gosec // bounded by model.MaxScore
		AwayScore:  int32(m.AwayScore), //nolint:gosec // bounded by model.MaxScore
		Tournament: m.Tournament,
		Country:    m.Country,
	}
}

// Rows converts matches to rows, keeping order.
func Rows(ms []model.Match) []Row {
	out := make([]Row, len(ms))
	for i, m := range ms {
		out[i] = NewRow(m)
	}
	return out
}

func (r Row) strings() []string {
	return []string{
		r.Date, r.HomeTeam, r.AwayTeam,
		strconv.Itoa(int(r.HomeScore)), strconv.Itoa(int(r.AwayScore)),
		r.Tournament, r.Country,
	}
}

// Write encodes matches to w in format f.
func Write(w io.Writer, f Format, ms []model.Match) error {
	switch f {
	case CSV:
		return writeCSV(w, ms)
	case XLSX:
		return writeXLSX(w, ms)
	case Parquet:
		return writeParquet(w, ms)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

func writeCSV(w io.Writer, ms []model.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range ms {
		if err := cw.Write(NewRow(m).strings()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, ms []model.Match) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, m := range ms {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := NewRow(m)
		values := []interface{}{r.Date, r.HomeTeam, r.AwayTeam, int(r.HomeScore), int(r.AwayScore), r.Tournament, r.Country}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush xlsx: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeParquet(w io.Writer, ms []model.Match) error {
	pw := parquet.NewGenericWriter[Row](w)
	if len(ms) > 0 {
		if _, err := pw.Write(Rows(ms)); err != nil {
			_ = pw.Close()
			return fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
