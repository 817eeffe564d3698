package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/matchboard/internal/adapters/export"
	"github.com/okian/matchboard/internal/domain/model"
)

// ExportDependencies defines the interface for downloads of filtered rows.
type ExportDependencies interface {
	MatchesDependencies
	RecordExport(format string)
}

// ExportHandler handles export requests.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleGetExport handles GET /api/export?format=csv|xlsx|parquet requests.
func (h *ExportHandler) HandleGetExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	format := export.CSV
	if raw := r.URL.Query().Get(paramFormat); raw != "" {
		f, err := export.ParseFormat(raw)
		if err != nil {
			writeFailure(w, r, op, fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
		format = f
	}

	p, ok := resolveFilter(w, r, op, h.deps)
	if !ok {
		return
	}
	ms, err := h.deps.Matches(r.Context(), p)
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, ms); err != nil {
		writeFailure(w, r, op, fmt.Errorf("%w: %v", ErrExport, err))
		return
	}
	h.deps.RecordExport(string(format))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(p, format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func exportName(p model.FilterParams, f export.Format) string {
	return fmt.Sprintf("matches_%d-%d%s", p.Years.Min, p.Years.Max, f.Extension())
}
