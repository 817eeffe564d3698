package service

import "errors"

// ErrNotStarted is returned when the dataset is requested before Start.
var ErrNotStarted = errors.New("service not started")
