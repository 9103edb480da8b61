package search

import (
	"context"
	"strings"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"golang.org/x/sync/errgroup"
)

// Source is the subset of the API client a Fetcher needs.
type Source interface {
	ListRecords(ctx context.Context, filters funeralhomes.Filters, opts funeralhomes.ListOptions) ([]funeralhomes.Record, error)
	CountRecords(ctx context.Context, filters funeralhomes.Filters) (int, error)
}

// Result is one page of records and the total number of matches.
type Result struct {
	Rows  []funeralhomes.Record
	Total int
}

// Fetcher runs the list and count requests of a Query.
type Fetcher struct {
	source Source
}

// NewFetcher returns a Fetcher reading from source.
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch issues both requests concurrently and waits for both. The first
// failure is returned and the partial result discarded.
func (f *Fetcher) Fetch(ctx context.Context, q Query) (Result, error) {
	var (
		g     errgroup.Group
		rows  []funeralhomes.Record
		total int
	)

	g.Go(func() error {
		r, err := f.source.ListRecords(ctx, q.Filters, q.ListOptions())
		if err != nil {
			return err
		}
		rows = r
		return nil
	})
	g.Go(func() error {
		n, err := f.source.CountRecords(ctx, q.Filters)
		if err != nil {
			return err
		}
		total = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Rows: rows, Total: total}, nil
}

// Run fetches t, applies the result to v and follows clamp refetches until
// the view settles. It returns the final snapshot.
func (f *Fetcher) Run(ctx context.Context, v *View, t Ticket) State {
	for {
		res, err := f.Fetch(ctx, t.Query)
		out := v.Apply(t, res, err)
		if out.Refetch == nil {
			return v.Snapshot()
		}
		t = *out.Refetch
	}
}

// ErrorMessage reduces any fetch error to the string shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Unknown error"
	}
	return msg
}
