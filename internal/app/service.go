// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/okian/matchboard/internal/adapters/repository"
	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/internal/domain/pipeline"
	"github.com/okian/matchboard/pkg/logger"
)

// Defaults used when no option overrides them.
const (
	DefaultDataPath     = "all_matches.csv"
	DefaultSuggestLimit = 3
	DefaultLookupLimit  = 20
)

// DefaultCountries is the initial selection when none is configured.
var DefaultCountries = []string{"India", "Brazil", "Spain", "Argentina"} //nolint:gochecknoglobals // read-only default

// Service implements the API dependencies for the match dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	aggregator *pipeline.Aggregator

	// Configuration
	dataPath         string
	defaultCountries []string
	topMatches       int
	suggestLimit     int

	// State
	started   bool
	summaries atomic.Int64
	exports   atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the results file read on Start.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithStore supplies a dataset store, replacing the file store built from
// the data path.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDefaultCountries sets the initial country selection. Names absent from
// the dataset are ignored when the defaults are resolved.
func WithDefaultCountries(countries []string) Option {
	return func(s *Service) {
		s.defaultCountries = slices.Clone(countries)
	}
}

// WithTopMatches sets the length of the highest-scoring list.
func WithTopMatches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topMatches = n
		}
	}
}

// WithSuggestLimit caps did-you-mean suggestions for unknown countries.
func WithSuggestLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestLimit = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:         DefaultDataPath,
		defaultCountries: slices.Clone(DefaultCountries),
		topMatches:       pipeline.DefaultTopN,
		suggestLimit:     DefaultSuggestLimit,
		logger:           nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	s.aggregator = pipeline.New(pipeline.WithTopN(s.topMatches))
	return s
}

// Start loads the dataset. A load failure is returned and leaves the
// service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewFileStore(s.dataPath, repository.WithLogger(s.logger.Named("repository")))
	}

	s.logger.Info(ctx, "starting match dashboard service...", logger.String("dataPath", s.dataPath))

	ds, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "match dashboard service started",
		logger.Int("matches", ds.Len()),
		logger.Int("countries", len(ds.Countries())),
		logger.Int("topMatches", s.topMatches),
	)
	return nil
}

// Stop marks the service stopped. The cached dataset is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "match dashboard service stopped")
}

// Dataset returns the loaded dataset.
func (s *Service) Dataset(ctx context.Context) (*model.Dataset, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()

	if store == nil {
		return nil, ErrNotStarted
	}
	return store.Load(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"dataPath":         s.dataPath,
		"topMatches":       s.topMatches,
		"defaultCountries": slices.Clone(s.defaultCountries),
		"summariesServed":  s.summaries.Load(),
		"exportsServed":    s.exports.Load(),
		"datasetLoaded":    false,
	}

	if s.store != nil && s.store.Loaded() {
		ds, err := s.store.Load(context.Background())
		if err == nil {
			years := ds.YearBounds()
			stats["datasetLoaded"] = true
			stats["totalMatches"] = ds.Len()
			stats["totalCountries"] = len(ds.Countries())
			stats["minYear"] = years.Min
			stats["maxYear"] = years.Max
		}
	}
	return stats
}
