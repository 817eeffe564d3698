// Package dates parses the free-form match dates found in results files.
//
// Dates arrive in mixed textual formats ("1872-11-30", "30/11/1872",
// "30 Nov 1872", ...). Ambiguous numeric forms are read day-first, and every
// result is normalized to a calendar date at UTC midnight.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// dayFirstNumeric matches d.m.y and d-m-y prefixes, which dateparse would
// otherwise read month-first or reject.
var dayFirstNumeric = regexp.MustCompile(`^(\d{1,2})[.-](\d{1,2})[.-](\d{4}|\d{2})\b`) //nolint:gochecknoglobals // compiled once

// Parse reads s as a calendar date, preferring day-first interpretation.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	if m := dayFirstNumeric.FindStringSubmatch(s); m != nil {
		// Slashes are the separator dateparse reads day-first.
		s = m[1] + "/" + m[2] + "/" + m[3] + s[len(m[0]):]
	}
	t, err := dateparse.ParseIn(s, time.UTC,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnparseable, s, err)
	}
	return Normalize(t), nil
}

// Normalize drops the time-of-day and zone, keeping the calendar date.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
