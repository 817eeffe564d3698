package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/matchboard/internal/domain/dates"
	"github.com/okian/matchboard/internal/domain/model"
)

// Required header names, matched case-insensitively. Other columns are ignored.
const (
	ColDate       = "date"
	ColHomeTeam   = "home_team"
	ColAwayTeam   = "away_team"
	ColHomeScore  = "home_score"
	ColAwayScore  = "away_score"
	ColTournament = "tournament"
	ColCountry    = "country"
)

// RequiredColumns lists the header names every source must carry.
var RequiredColumns = []string{ //nolint:gochecknoglobals // read-only column list
	ColDate, ColHomeTeam, ColAwayTeam, ColHomeScore, ColAwayScore, ColTournament, ColCountry,
}

// ctxCheckEvery bounds how many rows are decoded between cancellation checks.
const ctxCheckEvery = 4096

// ReadFunc reads every match from path.
type ReadFunc func(ctx context.Context, path string) ([]model.Match, error)

// ReadFile reads a results file, choosing the format by extension:
// .csv (and .txt) as comma separated text, .xlsx as the first worksheet.
// Every failure is a *DataLoadError.
func ReadFile(ctx context.Context, path string) ([]model.Match, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", "":
		f, err := os.Open(path)
		if err != nil {
			return nil, loadErr(path, 0, "", err)
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(ctx, path, f)
	case ".xlsx", ".xlsm":
		return readXLSX(ctx, path)
	default:
		return nil, loadErr(path, 0, "", fmt.Errorf("%w: %s", ErrUnsupportedExt, filepath.Ext(path)))
	}
}

// ReadCSV decodes comma separated rows from r. name is only used in errors.
func ReadCSV(ctx context.Context, name string, r io.Reader) ([]model.Match, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, loadErr(name, 0, "", ErrEmptySource)
	}
	if err != nil {
		return nil, loadErr(name, 1, "", err)
	}
	dec, err := newRowDecoder(name, header)
	if err != nil {
		return nil, err
	}

	var out []model.Match
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadErr(name, row, "", err)
		}
		if row%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, loadErr(name, row, "", err)
			}
		}
		if blankRecord(rec) {
			continue
		}
		m, err := dec.decode(row, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func readXLSX(ctx context.Context, path string) ([]model.Match, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, loadErr(path, 0, "", ErrEmptySource)
	}
	// Raw values keep date cells as serial numbers instead of their
	// display format, which may drop the century.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	if len(rows) == 0 {
		return nil, loadErr(path, 0, "", ErrEmptySource)
	}
	dec, err := newRowDecoder(path, rows[0])
	if err != nil {
		return nil, err
	}
	dec.serialDates = true
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		dec.date1904 = *props.Date1904
	}

	out := make([]model.Match, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		row := i + 2
		if row%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, loadErr(path, row, "", err)
			}
		}
		if blankRecord(rec) {
			continue
		}
		m, err := dec.decode(row, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// rowDecoder maps a header to column positions and turns records into matches.
type rowDecoder struct {
	name string
	idx  map[string]int

	// serialDates accepts spreadsheet day serials in the date column.
	serialDates bool
	date1904    bool
}

func newRowDecoder(name string, header []string) (*rowDecoder, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, loadErr(name, 1, col, ErrMissingColumn)
		}
	}
	return &rowDecoder{name: name, idx: idx}, nil
}

// field returns the trimmed cell for col; short rows read as blank.
func (d *rowDecoder) field(rec []string, col string) string {
	i := d.idx[col]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (d *rowDecoder) text(row int, rec []string, col string) (string, error) {
	v := d.field(rec, col)
	if v == "" {
		return "", loadErr(d.name, row, col, ErrBlankField)
	}
	return v, nil
}

func (d *rowDecoder) score(row int, rec []string, col string) (int, error) {
	v := d.field(rec, col)
	if v == "" {
		return 0, loadErr(d.name, row, col, ErrBlankField)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, loadErr(d.name, row, col, fmt.Errorf("%w: %q", ErrInvalidScore, v))
	}
	if n < 0 {
		return 0, loadErr(d.name, row, col, fmt.Errorf("%w: negative %d", ErrInvalidScore, n))
	}
	if n > model.MaxScore {
		return 0, loadErr(d.name, row, col, fmt.Errorf("%w: %d exceeds %d", ErrInvalidScore, n, model.MaxScore))
	}
	return n, nil
}

func (d *rowDecoder) date(row int, rec []string) (time.Time, error) {
	v := d.field(rec, ColDate)
	if d.serialDates {
		if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
			t, err := excelize.ExcelDateToTime(serial, d.date1904)
			if err != nil {
				return time.Time{}, loadErr(d.name, row, ColDate, err)
			}
			return dates.Normalize(t), nil
		}
	}
	t, err := dates.Parse(v)
	if err != nil {
		return time.Time{}, loadErr(d.name, row, ColDate, err)
	}
	return t, nil
}

func (d *rowDecoder) decode(row int, rec []string) (model.Match, error) {
	var (
		m   model.Match
		err error
	)
	if m.Date, err = d.date(row, rec); err != nil {
		return m, err
	}
	if m.HomeTeam, err = d.text(row, rec, ColHomeTeam); err != nil {
		return m, err
	}
	if m.AwayTeam, err = d.text(row, rec, ColAwayTeam); err != nil {
		return m, err
	}
	if m.HomeScore, err = d.score(row, rec, ColHomeScore); err != nil {
		return m, err
	}
	if m.AwayScore, err = d.score(row, rec, ColAwayScore); err != nil {
		return m, err
	}
	if m.Tournament, err = d.text(row, rec, ColTournament); err != nil {
		return m, err
	}
	if m.Country, err = d.text(row, rec, ColCountry); err != nil {
		return m, err
	}
	return m, nil
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
