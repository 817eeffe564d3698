// Package export writes filtered match rows to CSV, XLSX or Parquet.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an export file format.
type Format string

// Supported formats.
const (
	CSV     Format = "csv"
	XLSX    Format = "xlsx"
	Parquet Format = "parquet"
)

// ErrUnknownFormat is returned for formats other than csv, xlsx and parquet.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists every supported format.
func Formats() []Format { return []Format{CSV, XLSX, Parquet} }

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, XLSX, Parquet:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if strings.EqualFold(ext, "parq") {
		return Parquet, nil
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case Parquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Extension returns the file extension with a leading dot.
func (f Format) Extension() string { return "." + string(f) }
