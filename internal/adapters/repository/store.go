// Package repository loads the results file and keeps the parsed dataset for
// the lifetime of the process.
package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/pkg/logger"
	"github.com/okian/matchboard/pkg/metrics"
)

// Store provides the process-wide dataset.
type Store interface {
	// Load returns the dataset, reading the source on first use only.
	// A failed read is not remembered; the next call tries again.
	Load(ctx context.Context) (*model.Dataset, error)

	// Loaded reports whether a dataset is cached.
	Loaded() bool
}

// FileStore memoizes the dataset read from a single file.
type FileStore struct {
	path string
	read ReadFunc
	log  logger.Logger

	mu sync.Mutex
	ds atomic.Pointer[model.Dataset]

	reads atomic.Int64
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store for the results file at path. Nothing is read
// until the first Load.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path: path,
		read: ReadFile,
		log:  logger.Get().Named("repository"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) (*model.Dataset, error) {
	if ds := s.ds.Load(); ds != nil {
		return ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds := s.ds.Load(); ds != nil {
		return ds, nil
	}

	start := time.Now()
	s.reads.Add(1)
	matches, err := s.read(ctx, s.path)
	if err != nil {
		metrics.RecordDatasetLoadError()
		s.log.Error(ctx, "dataset load failed", logger.String("path", s.path), logger.Error(err))
		return nil, err
	}

	ds := model.NewDataset(matches)
	s.ds.Store(ds)

	took := time.Since(start)
	metrics.RecordDatasetLoad(ds.Len(), len(ds.Countries()), float64(took.Microseconds())/1000)
	years := ds.YearBounds()
	s.log.Info(ctx, "dataset loaded",
		logger.String("path", s.path),
		logger.Int("rows", ds.Len()),
		logger.Int("min_year", years.Min),
		logger.Int("max_year", years.Max),
		logger.Duration("took", took),
	)
	return ds, nil
}

// Loaded implements Store.
func (s *FileStore) Loaded() bool { return s.ds.Load() != nil }

// Reads returns how many times the source has been read.
func (s *FileStore) Reads() int64 { return s.reads.Load() }
