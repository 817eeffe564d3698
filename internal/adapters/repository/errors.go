package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for dataset loading errors.
var (
	ErrDataLoad       = errors.New("dataset load failed")
	ErrMissingColumn  = errors.New("missing required column")
	ErrUnsupportedExt = errors.New("unsupported dataset file type")
	ErrInvalidScore   = errors.New("invalid score")
	ErrBlankField     = errors.New("blank field")
	ErrEmptySource    = errors.New("no header row")
)

// DataLoadError reports why a load was rejected. Row is the 1-based row of
// the source including the header, or 0 when the failure is not row specific.
type DataLoadError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset ")
	b.WriteString(e.Path)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %s", e.Column)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Is makes every DataLoadError match ErrDataLoad.
func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

func loadErr(path string, row int, column string, err error) error {
	return &DataLoadError{Path: path, Row: row, Column: column, Err: err}
}
