// Package report renders dashboard summaries as terminal tables, from a
// local dataset or a running server.
package report

import (
	"time"

	"github.com/okian/matchboard/internal/domain/model"
	"github.com/okian/matchboard/internal/domain/pipeline"
)

// DefaultTimeout bounds each request made to a remote server.
const DefaultTimeout = 30 * time.Second

// Config holds one report invocation.
type Config struct {
	DataPath   string // local dataset file
	Server     string // base URL of a running dashboard; wins over DataPath
	Filter     model.FilterRequest
	Countries  []string      // default selection for local runs
	Top        int           // highest-scoring matches to list
	ExportPath string        // optional export file, format by extension
	Timeout    time.Duration // remote request timeout
}

// Remote reports whether the summary comes from a server.
func (c *Config) Remote() bool { return c.Server != "" }

// Filter is the resolved window a summary was computed for.
type Filter struct {
	From      int      `json:"from"`
	To        int      `json:"to"`
	Countries []string `json:"countries"`
}

// Summary is the pipeline result plus the filter that produced it. It
// decodes directly from the /api/summary body.
type Summary struct {
	Filter Filter `json:"filter"`
	Empty  bool   `json:"empty"`
	pipeline.Result
}

// NewSummary wraps a local pipeline result.
func NewSummary(res *pipeline.Result) *Summary {
	p := res.Params
	return &Summary{
		Filter: Filter{From: p.Years.Min, To: p.Years.Max, Countries: p.Countries()},
		Empty:  res.Empty(),
		Result: *res,
	}
}
