package model

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel kinds for filter errors.
var (
	ErrInvalidFilter  = errors.New("invalid filter")
	ErrUnknownCountry = errors.New("unknown country")
)

// UnknownCountryError names a requested country that is absent from the
// dataset, together with close matches.
type UnknownCountryError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCountryError) Error() string {
	msg := "unknown country " + strconv.Quote(e.Name)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

// Is lets errors.Is match ErrUnknownCountry.
func (e *UnknownCountryError) Is(target error) bool { return target == ErrUnknownCountry }
