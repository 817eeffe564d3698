package dates

import "errors"

// Sentinel kinds for date parsing errors.
var (
	ErrEmpty       = errors.New("empty date")
	ErrUnparseable = errors.New("unparseable date")
)
