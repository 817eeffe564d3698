package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/matchboard/internal/adapters/export"
	"github.com/okian/matchboard/internal/domain/model"
)

// maxErrorBody caps how much of an error reply is read.
const maxErrorBody = 64 << 10

// Client talks to a running dashboard server.
type Client struct {
	base   *url.URL
	client *http.Client
}

// NewClient returns a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadServerURL, baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{base: u, client: &http.Client{Timeout: timeout}}, nil
}

// Summary fetches /api/summary for req.
func (c *Client) Summary(ctx context.Context, req model.FilterRequest) (*Summary, error) {
	resp, err := c.get(ctx, "/api/summary", filterQuery(req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var s Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decode summary: %v", ErrRemote, err)
	}
	return &s, nil
}

// Export streams /api/export in format f for req into w.
func (c *Client) Export(ctx context.Context, req model.FilterRequest, f export.Format, w io.Writer) error {
	q := filterQuery(req)
	q.Set("format", string(f))
	resp, err := c.get(ctx, "/api/export", q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: read export: %v", ErrRemote, err)
	}
	return nil
}

// get performs a GET and turns non-2xx replies into *APIError.
func (c *Client) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Code        string   `json:"code"`
		Message     string   `json:"message"`
		Suggestions []string `json:"suggestions"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
		apiErr.Suggestions = payload.Suggestions
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return nil, apiErr
}

// filterQuery encodes req the way the API parses it. An explicitly empty
// country selection is sent as a single blank country.
func filterQuery(req model.FilterRequest) url.Values {
	q := url.Values{}
	if req.From != nil {
		q.Set("from", strconv.Itoa(*req.From))
	}
	if req.To != nil {
		q.Set("to", strconv.Itoa(*req.To))
	}
	if req.CountriesSet {
		if len(req.Countries) == 0 {
			q.Set("country", "")
		}
		for _, c := range req.Countries {
			q.Add("country", c)
		}
	}
	return q
}
