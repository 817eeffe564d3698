package service

import (
	"context"
	"time"

	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/internal/domain/pipeline"
	"github.com/okian/matchboard/pkg/logger"
	"github.com/okian/matchboard/pkg/metrics"
)

// Summary runs the filter-aggregate pipeline for p.
func (s *Service) Summary(ctx context.Context, p model.FilterParams) (*pipeline.Result, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := s.aggregator.Run(ds, p)
	took := time.Since(start)

	s.summaries.Add(1)
	metrics.RecordPipelineRun(float64(took.Microseconds())/1000, len(res.Matches))
	if res.Empty() {
		metrics.RecordEmptyResult()
	}
	for _, name := range res.KPIs.Undefined() {
		metrics.RecordUndefinedKPI(name)
	}

	s.log().Debug(ctx, "pipeline run",
		logger.Int("from", p.Years.Min),
		logger.Int("to", p.Years.Max),
		logger.Int("countries", len(p.Countries())),
		logger.Int("matches", len(res.Matches)),
		logger.Bool("empty", res.Empty()),
		logger.Duration("took", took),
	)
	return res, nil
}

// Matches returns the filtered rows for p without aggregating them.
func (s *Service) Matches(ctx context.Context, p model.FilterParams) ([]model.Match, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.Filter(ds, p), nil
}

// RecordExport counts a completed export of the given format.
func (s *Service) RecordExport(format string) {
	s.exports.Add(1)
	metrics.RecordExport(format)
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}
