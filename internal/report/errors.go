package report

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	ErrNoSource     = errors.New("report: no data path or server given")
	ErrRemote       = errors.New("report: server request failed")
	ErrBadServerURL = errors.New("report: invalid server url")
)

// APIError is a non-2xx reply from the dashboard server.
type APIError struct {
	Status      int
	Code        string
	Message     string
	Suggestions []string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "server returned %d", e.Status)
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean: " + strings.Join(e.Suggestions, ", ") + ")")
	}
	return b.String()
}

// Is matches ErrRemote.
func (e *APIError) Is(target error) bool { return target == ErrRemote }
