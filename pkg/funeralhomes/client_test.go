package funeralhomes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"
	"time"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewStripsTrailingSlash(t *testing.T) {
	tests := map[string]string{
		"http://api.local/":   "http://api.local",
		"http://api.local":    "http://api.local",
		" http://api.local/ ": "http://api.local",
		"":                    "",
	}
	for in, want := range tests {
		if got := New(in).BaseURL(); got != want {
			t.Errorf("New(%q).BaseURL() = %q, want %q", in, got, want)
		}
	}
}

func TestListRecords(t *testing.T) {
	var gotQuery string
	var gotHeaders http.Header

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/funeral-homes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"internal_id": 7, "cluster_id": 3, "cluster_size": 2, "name": "Oak Chapel",
			 "street": "12 Oak St", "city": "Denver", "region": "CO", "postal_code": null,
			 "country": "US", "phone": null, "website": "oak.example", "latitude": 39.7,
			 "longitude": -104.9, "sources": "[\"osm\"]", "source_ids": null}
		]`)
	})

	c := New(srv.URL + "/")
	records, err := c.ListRecords(context.Background(),
		Filters{Name: "oak", City: "  "},
		ListOptions{Limit: 15, Offset: 15, SortBy: SortByInternalID, SortDir: SortAsc},
	)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}

	wantQuery := "name=oak&limit=15&offset=15&sort_by=internal_id&sort_dir=asc"
	if gotQuery != wantQuery {
		t.Errorf("query = %q, want %q", gotQuery, wantQuery)
	}
	if gotHeaders.Get("Cache-Control") != "no-cache" || gotHeaders.Get("Pragma") != "no-cache" {
		t.Errorf("expected no-cache request headers, got %v", gotHeaders)
	}
	if gotHeaders.Get("X-Request-ID") == "" {
		t.Error("expected an X-Request-ID header")
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.InternalID != 7 || *r.ClusterID != 3 || *r.ClusterSize != 2 {
		t.Errorf("unexpected identifiers: %+v", r)
	}
	if diff := cmp.Diff(strPtr("Oak Chapel"), r.Name); diff != "" {
		t.Errorf("name mismatch (-want +got):\n%s", diff)
	}
	if r.PostalCode != nil || r.Phone != nil {
		t.Errorf("expected null postal_code and phone, got %v %v", r.PostalCode, r.Phone)
	}
	if string(r.Sources) != `"[\"osm\"]"` {
		t.Errorf("sources not passed through verbatim: %s", r.Sources)
	}
}

func TestListRecordsEmptyArray(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	records, err := New(srv.URL).ListRecords(context.Background(), Filters{}, ListOptions{Limit: 15})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", records)
	}
}

func TestCountRecords(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"number", `{"total": 42}`, 42},
		{"string", `{"total": "17"}`, 17},
		{"missing", `{}`, 0},
		{"null", `{"total": null}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/funeral-homes/count" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				gotQuery = r.URL.RawQuery
				fmt.Fprint(w, tt.body)
			})

			got, err := New(srv.URL).CountRecords(context.Background(), Filters{Region: "CO", Name: " "})
			if err != nil {
				t.Fatalf("CountRecords: %v", err)
			}
			if got != tt.want {
				t.Errorf("total = %d, want %d", got, tt.want)
			}
			if gotQuery != "region=CO" {
				t.Errorf("count query = %q, want only filters", gotQuery)
			}
		})
	}
}

func TestCountRecordsRejectsNonNumericTotal(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total": "many"}`)
	})

	_, err := New(srv.URL).CountRecords(context.Background(), Filters{})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"body text", http.StatusNotFound, "not found", "API error 404: not found"},
		{"body kept verbatim", http.StatusNotFound, "not found\n", "API error 404: not found\n"},
		{"empty body", http.StatusInternalServerError, "", "API error 500: Internal Server Error"},
		{"whitespace body", http.StatusBadGateway, "  \n", "API error 502:   \n"},
		{"json body", http.StatusBadRequest, `{"detail":"sort_dir must be 'asc' or 'desc'"}`,
			`API error 400: {"detail":"sort_dir must be 'asc' or 'desc'"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := New(srv.URL).ListRecords(context.Background(), Filters{}, ListOptions{Limit: 15})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestAPIErrorUnreadableBody(t *testing.T) {
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(iotest.ErrReader(errors.New("connection reset"))),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})

	c := New("http://api.invalid", WithHTTPClient(&http.Client{Transport: rt}))
	_, err := c.ListRecords(context.Background(), Filters{}, ListOptions{Limit: 15})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if want := "API error 503: Service Unavailable"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestMalformedJSONIsDecodeError(t *testing.T) {
	tests := map[string]string{
		"truncated":        `[{"internal_id": `,
		"trailing garbage": `[] trailing garbage`,
		"two values":       `[] []`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			})

			recs, err := New(srv.URL).ListRecords(context.Background(), Filters{}, ListOptions{Limit: 15})
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got recs=%v err=%v", recs, err)
			}
			if decodeErr.Path != "/funeral-homes" {
				t.Errorf("path = %q", decodeErr.Path)
			}
		})
	}

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total": 3} {"total": 4}`)
	})
	var decodeErr *DecodeError
	if _, err := New(srv.URL).CountRecords(context.Background(), Filters{}); !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError from count, got %v", err)
	}
}

func TestWithTimeoutCopiesHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}
	c := New("http://api.local", WithHTTPClient(hc), WithTimeout(5*time.Second))

	if hc.Timeout != time.Minute {
		t.Errorf("caller's client timeout changed to %v", hc.Timeout)
	}
	if c.httpClient == hc {
		t.Fatal("expected a copy of the caller's client")
	}
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.httpClient.Timeout)
	}

	before := http.DefaultClient.Timeout
	New("http://api.local", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	if http.DefaultClient.Timeout != before {
		t.Errorf("http.DefaultClient timeout changed to %v", http.DefaultClient.Timeout)
	}
}

func TestMissingBaseURLFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("unexpected request")
	})

	c := New("", WithHTTPClient(&http.Client{Transport: rt}))

	if _, err := c.ListRecords(context.Background(), Filters{}, ListOptions{Limit: 15}); !errors.Is(err, ErrBaseURLNotSet) {
		t.Fatalf("ListRecords error = %v, want ErrBaseURLNotSet", err)
	}
	if _, err := c.CountRecords(context.Background(), Filters{}); !errors.Is(err, ErrBaseURLNotSet) {
		t.Fatalf("CountRecords error = %v, want ErrBaseURLNotSet", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", calls.Load())
	}
}

func TestTransportError(t *testing.T) {
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	c := New("http://api.invalid", WithHTTPClient(&http.Client{Transport: rt}))
	_, err := c.CountRecords(context.Background(), Filters{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected transport message to surface, got %q", err.Error())
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failure must not be an APIError")
	}
}

func TestUserAgent(t *testing.T) {
	var ua string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		ua = r.UserAgent()
		fmt.Fprint(w, `{"total": 1}`)
	})

	if _, err := New(srv.URL, WithUserAgent("fhsearch/test")).CountRecords(context.Background(), Filters{}); err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if ua != "fhsearch/test" {
		t.Fatalf("User-Agent = %q", ua)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
