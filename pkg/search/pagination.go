package search

import (
	"strconv"
	"strings"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
)

// PageSize is the fixed number of records per page.
const PageSize = 15

// PageCount returns ceil(total/PageSize), never less than 1.
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// Query is what a single fetch asks the API for.
type Query struct {
	Filters funeralhomes.Filters
	Page    int

	// SortBy and SortDir default to internal_id ascending when empty.
	SortBy  string
	SortDir string
}

// ListOptions translates the page index into limit/offset directives.
func (q Query) ListOptions() funeralhomes.ListOptions {
	opts := funeralhomes.ListOptions{
		Limit:   PageSize,
		Offset:  q.Page * PageSize,
		SortBy:  q.SortBy,
		SortDir: q.SortDir,
	}
	if opts.SortBy == "" {
		opts.SortBy = funeralhomes.SortByInternalID
	}
	if opts.SortDir == "" {
		opts.SortDir = funeralhomes.SortAsc
	}
	return opts
}

// ParsePage reads a 1-based page number from a URL and returns the 0-based
// index. Missing, malformed or non-positive values select the first page.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0
	}
	return n - 1
}

// PageParam is the inverse of ParsePage.
func PageParam(page int) string {
	return strconv.Itoa(page + 1)
}
