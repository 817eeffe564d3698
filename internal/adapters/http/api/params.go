package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/matchboard/internal/domain/model"
)

// Query parameter names shared by the filtered endpoints.
const (
	paramFrom    = "from"
	paramTo      = "to"
	paramCountry = "country"
	paramOffset  = "offset"
	paramLimit   = "limit"
	paramFormat  = "format"
	paramQuery   = "q"
)

// parseFilter reads from, to and repeated country values. A present but
// blank country parameter selects nothing; an absent one means defaults.
func parseFilter(q url.Values) (model.FilterRequest, error) {
	var req model.FilterRequest
	var err error
	if req.From, err = optionalInt(q, paramFrom); err != nil {
		return req, err
	}
	if req.To, err = optionalInt(q, paramTo); err != nil {
		return req, err
	}
	if values, ok := q[paramCountry]; ok {
		req.CountriesSet = true
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				req.Countries = append(req.Countries, v)
			}
		}
	}
	return req, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not an integer", ErrBadRequest, key, raw)
	}
	return &v, nil
}

// parsePage reads offset and limit. limit defaults to min(def, maxLimit).
func parsePage(q url.Values, def, maxLimit int) (offset, limit int, err error) {
	off, err := optionalInt(q, paramOffset)
	if err != nil {
		return 0, 0, err
	}
	lim, err := optionalInt(q, paramLimit)
	if err != nil {
		return 0, 0, err
	}

	limit = min(def, maxLimit)
	if lim != nil {
		limit = *lim
	}
	if off != nil {
		offset = *off
	}
	switch {
	case offset < 0:
		return 0, 0, fmt.Errorf("%w: offset must not be negative", ErrBadRequest)
	case limit < 1:
		return 0, 0, fmt.Errorf("%w: limit must be at least 1", ErrBadRequest)
	case limit > maxLimit:
		return 0, 0, fmt.Errorf("%w: limit %d exceeds %d", ErrBadRequest, limit, maxLimit)
	}
	return offset, limit, nil
}

// filterEcho reports the parameters a response was computed for.
type filterEcho struct {
	From      int      `json:"from"`
	To        int      `json:"to"`
	Countries []string `json:"countries"`
}

func echo(p model.FilterParams) filterEcho {
	return filterEcho{From: p.Years.Min, To: p.Years.Max, Countries: p.Countries()}
}
