package components

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"github.com/rubiojr/fhsearch/pkg/search"
)

// PageURL links to page (0-based) of the search page with filters applied.
// Only the form fields are carried and the first page omits the page
// parameter, so the URL matches what submitting the form produces.
func PageURL(filters funeralhomes.Filters, page int) string {
	var b strings.Builder
	b.WriteString("/")
	sep := "?"
	add := func(key, value string) {
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(key))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(value))
		sep = "&"
	}
	for _, field := range funeralhomes.FormFields {
		if v := strings.TrimSpace(filters.Get(field)); v != "" {
			add(string(field), v)
		}
	}
	if page > 0 {
		add("page", search.PageParam(page))
	}
	return b.String()
}

// CardAnchor is the element id of a result card, so a row can be linked to
// directly.
func CardAnchor(id int64) string {
	return "fh-" + strconv.FormatInt(id, 10)
}
