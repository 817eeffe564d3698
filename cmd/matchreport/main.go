// Command matchreport prints the dashboard KPIs and chart series as
// terminal tables, from a local results file or a running server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/matchboard/internal/config"
	"github.com/okian/matchboard/internal/report"
	"github.com/okian/matchboard/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	data      string
	server    string
	from      int
	to        int
	countries []string
	top       int
	export    string
	logLevel  string
	timeout   time.Duration
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "matchreport",
		Short: "Print international match KPIs as tables",
		Long: `Filter international football results by year span and host country,
then print the KPI, matches-per-year, tournament, top-match and outcome tables.

Defaults come from the same configuration as the dashboard server
(MATCHBOARD_* environment variables, MATCHBOARD_CONFIG file, .env).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &f, stdout, stderr)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.data, "data", "", "results file (.csv or .xlsx); defaults to the configured data_path")
	fl.StringVar(&f.server, "server", "", "base URL of a running dashboard, e.g. http://localhost:9080")
	fl.IntVar(&f.from, "from", 0, "first year (default: earliest year in the dataset)")
	fl.IntVar(&f.to, "to", 0, "last year (default: latest year in the dataset)")
	fl.StringArrayVar(&f.countries, "country", nil, "host country to include; repeat for more (default: configured countries)")
	fl.IntVar(&f.top, "top", 0, "number of highest-scoring matches to list (default: configured top_matches)")
	fl.StringVar(&f.export, "export", "", "write the filtered rows to this file; format from extension (.csv, .xlsx, .parquet)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	fl.DurationVar(&f.timeout, "timeout", report.DefaultTimeout, "request timeout when --server is set")
	cmd.MarkFlagsMutuallyExclusive("data", "server")

	return cmd
}

func run(cmd *cobra.Command, f *flags, stdout, stderr io.Writer) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(stderr)); err != nil {
		return err
	}
	level := cfg.LogLevel
	if f.logLevel != "" {
		level = f.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}

	rc := &report.Config{
		DataPath:   cfg.DataPath,
		Server:     f.server,
		Countries:  cfg.DefaultCountries,
		Top:        cfg.TopMatches,
		ExportPath: f.export,
		Timeout:    f.timeout,
	}
	if f.data != "" {
		rc.DataPath = f.data
	}
	fl := cmd.Flags()
	if fl.Changed("top") {
		rc.Top = f.top
	}
	if fl.Changed("from") {
		rc.Filter.From = &f.from
	}
	if fl.Changed("to") {
		rc.Filter.To = &f.to
	}
	if fl.Changed("country") {
		rc.Filter.CountriesSet = true
		rc.Filter.Countries = f.countries
	}
	if rc.Top < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", rc.Top)
	}

	return report.Run(ctx, rc, stdout)
}
