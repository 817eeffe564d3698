package repository

import (
	"github.com/okian/matchboard/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used to report loads.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithReadFunc replaces the function that reads the backing file.
func WithReadFunc(read ReadFunc) Option {
	return func(s *FileStore) {
		if read != nil {
			s.read = read
		}
	}
}
