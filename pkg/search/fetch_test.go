package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"go.uber.org/goleak"
)

type fakeSource struct {
	mu sync.Mutex

	rows     []funeralhomes.Record
	total    int
	listErr  error
	countErr error

	// gate, when set, blocks both calls until closed.
	gate chan struct{}

	listCalls  []funeralhomes.ListOptions
	countCalls []funeralhomes.Filters
	inFlight   int
}

func (f *fakeSource) enter() {
	f.mu.Lock()
	f.inFlight++
	f.mu.Unlock()
}

func (f *fakeSource) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func (f *fakeSource) ListRecords(ctx context.Context, filters funeralhomes.Filters, opts funeralhomes.ListOptions) ([]funeralhomes.Record, error) {
	f.enter()
	defer f.leave()
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.listCalls = append(f.listCalls, opts)
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeSource) CountRecords(ctx context.Context, filters funeralhomes.Filters) (int, error) {
	f.enter()
	defer f.leave()
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.countCalls = append(f.countCalls, filters)
	f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

func TestFetchJoinsBothCalls(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{rows: records(1, 2), total: 2}
	res, err := NewFetcher(src).Fetch(context.Background(), Query{Filters: funeralhomes.Filters{City: "Denver"}, Page: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Total != 2 || len(res.Rows) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(src.listCalls) != 1 || src.listCalls[0].Offset != 30 || src.listCalls[0].Limit != 15 {
		t.Fatalf("unexpected list calls %+v", src.listCalls)
	}
	if len(src.countCalls) != 1 || src.countCalls[0].City != "Denver" {
		t.Fatalf("unexpected count calls %+v", src.countCalls)
	}
}

func TestFetchRunsCallsConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{rows: records(1), total: 1, gate: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := NewFetcher(src).Fetch(context.Background(), Query{})
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		src.mu.Lock()
		n := src.inFlight
		src.mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("calls were not in flight at the same time")
		}
		time.Sleep(time.Millisecond)
	}

	close(src.gate)
	if err := <-done; err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestFetchFailsIfEitherCallFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	countErr := &funeralhomes.APIError{StatusCode: 500, Message: "Internal Server Error"}
	tests := []struct {
		name string
		src  *fakeSource
		want error
	}{
		{"list fails", &fakeSource{listErr: funeralhomes.ErrBaseURLNotSet, total: 3}, funeralhomes.ErrBaseURLNotSet},
		{"count fails", &fakeSource{rows: records(1), countErr: countErr}, countErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewFetcher(tt.src).Fetch(context.Background(), Query{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if res.Rows != nil || res.Total != 0 {
				t.Fatalf("partial result leaked: %+v", res)
			}
		})
	}
}

func TestRunSettlesClampedPage(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{rows: records(31), total: 31}
	v := NewViewAt(funeralhomes.Filters{}, 9)

	s := NewFetcher(src).Run(context.Background(), v, v.Begin())

	if s.Page != 2 || s.Loading {
		t.Fatalf("unexpected settled state %+v", s)
	}
	if len(src.listCalls) != 2 {
		t.Fatalf("expected the clamped page to be fetched, got %d list calls", len(src.listCalls))
	}
	if src.listCalls[1].Offset != 30 {
		t.Fatalf("clamped fetch offset = %d, want 30", src.listCalls[1].Offset)
	}
}

func TestRunKeepsErrorMessage(t *testing.T) {
	src := &fakeSource{listErr: errors.New("dial tcp: connection refused")}
	v := NewView()

	s := NewFetcher(src).Run(context.Background(), v, v.Begin())
	if s.Error != "dial tcp: connection refused" || s.Loading {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New(""), "Unknown error"},
		{errors.New("  "), "Unknown error"},
		{&funeralhomes.APIError{StatusCode: 404, Message: "not found"}, "API error 404: not found"},
		{funeralhomes.ErrBaseURLNotSet, "API base URL is not set"},
	}
	for _, tt := range tests {
		if got := ErrorMessage(tt.err); got != tt.want {
			t.Errorf("ErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
