package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fixed copy shared by every surface.
const (
	Title        = "Funeral Homes Search"
	EmptyMessage = "No results found."
	FiltersChip  = "Filters active"
)

// LoadingPlaceholders is the number of placeholder cards shown while a fetch
// is in flight.
const LoadingPlaceholders = 9

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Summary is the line under the search form.
func Summary(pageSize, total int) string {
	return printer.Sprintf("Page size: %d. Total matches: %d.", pageSize, total)
}

// PageLine is the "Page X of Y" label for a zero-based page index.
func PageLine(page, pageCount int) string {
	return printer.Sprintf("Page %d of %d", page+1, pageCount)
}

// ShowingLine is the footer under the result grid.
func ShowingLine(n int) string {
	return printer.Sprintf("Showing %d results on this page.", n)
}
