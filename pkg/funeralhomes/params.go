package funeralhomes

import (
	"fmt"
	"net/url"
	"strings"
)

// queryParams is an insertion-ordered query string builder. Values are
// stringified and trimmed; blank values are dropped.
type queryParams struct {
	keys   []string
	values map[string]string
}

func newQueryParams() *queryParams {
	return &queryParams{values: make(map[string]string)}
}

// Set stores v under key unless it is nil or blank once stringified.
func (p *queryParams) Set(key string, v any) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = s
}

// Get returns the stored value and whether key is present.
func (p *queryParams) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of stored parameters.
func (p *queryParams) Len() int {
	return len(p.keys)
}

// Encode renders the parameters as a query string in insertion order.
func (p *queryParams) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

func filterParams(f Filters) *queryParams {
	p := newQueryParams()
	for _, field := range Fields {
		p.Set(string(field), f.Get(field))
	}
	return p
}

func listParams(f Filters, opts ListOptions) *queryParams {
	p := filterParams(f)
	p.Set("limit", opts.Limit)
	p.Set("offset", opts.Offset)
	p.Set("sort_by", opts.SortBy)
	p.Set("sort_dir", opts.SortDir)
	return p
}
