package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/matchboard/internal/adapters/export"
	"github.com/okian/matchboard/internal/adapters/repository"
	service "github.com/okian/matchboard/internal/app"
	"github.com/okian/matchboard/pkg/logger"
)

// exportFilePermission is the mode of files written by --export.
const exportFilePermission = 0o600

// Run builds the summary described by cfg, renders it to out and writes the
// optional export file.
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	var format export.Format
	if cfg.ExportPath != "" {
		f, err := export.FormatFromPath(cfg.ExportPath)
		if err != nil {
			return err
		}
		format = f
	}

	log := logger.Get().Named("report")
	log.Debug(ctx, "building match report",
		logger.String("dataPath", cfg.DataPath),
		logger.String("server", cfg.Server),
		logger.Int("top", cfg.Top),
		logger.String("export", cfg.ExportPath),
	)

	var (
		s   *Summary
		err error
	)
	switch {
	case cfg.Remote():
		s, err = runRemote(ctx, cfg, format)
	case cfg.DataPath != "":
		s, err = runLocal(ctx, cfg, format, log)
	default:
		return ErrNoSource
	}
	if err != nil {
		return err
	}

	if err := Render(out, s); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if cfg.ExportPath != "" {
		log.Info(ctx, "export written", logger.String("path", cfg.ExportPath), logger.String("format", string(format)))
	}
	return nil
}

func runLocal(ctx context.Context, cfg *Config, format export.Format, log logger.Logger) (*Summary, error) {
	opts := []service.Option{
		service.WithLogger(log),
		service.WithStore(repository.NewFileStore(cfg.DataPath, repository.WithLogger(log.Named("repository")))),
		service.WithTopMatches(cfg.Top),
	}
	if len(cfg.Countries) > 0 {
		opts = append(opts, service.WithDefaultCountries(cfg.Countries))
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	defer svc.Stop()

	p, err := svc.ResolveParams(ctx, cfg.Filter)
	if err != nil {
		return nil, err
	}
	res, err := svc.Summary(ctx, p)
	if err != nil {
		return nil, err
	}

	if cfg.ExportPath != "" {
		err := writeFile(cfg.ExportPath, func(w io.Writer) error {
			return export.Write(w, format, res.Matches)
		})
		if err != nil {
			return nil, err
		}
		svc.RecordExport(string(format))
	}
	return NewSummary(res), nil
}

func runRemote(ctx context.Context, cfg *Config, format export.Format) (*Summary, error) {
	c, err := NewClient(cfg.Server, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	s, err := c.Summary(ctx, cfg.Filter)
	if err != nil {
		return nil, err
	}
	// The server applies its own top_matches setting.
	if cfg.Top > 0 && len(s.TopMatches) > cfg.Top {
		s.TopMatches = s.TopMatches[:cfg.Top]
	}

	if cfg.ExportPath != "" {
		err := writeFile(cfg.ExportPath, func(w io.Writer) error {
			return c.Export(ctx, cfg.Filter, format, w)
		})
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// writeFile creates path and fills it with write. A failed write removes
// the partial file.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, exportFilePermission)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}
