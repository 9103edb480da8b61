package funeralhomes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rubiojr/fhsearch/pkg/log"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// Client talks to the funeral homes API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed through
// WithHTTPClient is copied first and left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New returns a client for the API rooted at baseURL. A single trailing slash
// is stripped. An empty baseURL is accepted here; calls then fail with
// ErrBaseURLNotSet.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListRecords fetches one page of records matching filters.
func (c *Client) ListRecords(ctx context.Context, filters Filters, opts ListOptions) ([]Record, error) {
	var records []Record
	if err := c.getJSON(ctx, "/funeral-homes", listParams(filters, opts), &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

type countResponse struct {
	Total json.RawMessage `json:"total"`
}

// CountRecords returns the number of records matching filters.
func (c *Client) CountRecords(ctx context.Context, filters Filters) (int, error) {
	const path = "/funeral-homes/count"

	var resp countResponse
	if err := c.getJSON(ctx, path, filterParams(filters), &resp); err != nil {
		return 0, err
	}
	total, err := parseTotal(resp.Total)
	if err != nil {
		return 0, &DecodeError{Path: path, Err: err}
	}
	return total, nil
}

// parseTotal coerces the total field to an int. A missing or null total is 0.
// Numbers encoded as strings are accepted.
func parseTotal(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}

	switch t := v.(type) {
	case float64:
		return int(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("total %q is not a number", t)
		}
		return int(f), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("total has unexpected type %T", v)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params *queryParams, out any) error {
	if c.baseURL == "" {
		return ErrBaseURLNotSet
	}

	endpoint := c.baseURL + path
	if params.Len() > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	l := log.ForService("client")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Debugf("GET %s failed id=%s: %v", endpoint, requestID, err)
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	l.Debugf("GET %s %d %s id=%s", endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			body = nil
		}
		return newAPIError(resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}
