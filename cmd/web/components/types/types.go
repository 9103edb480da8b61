package types

import (
	"github.com/rubiojr/fhsearch/pkg/render"
	"github.com/rubiojr/fhsearch/pkg/search"
)

// PageData represents data passed to templates
type PageData struct {
	Title   string
	State   search.State
	Cards   []render.Card
	PrevURL string // Empty when the previous page control is disabled
	NextURL string // Empty when the next page control is disabled
	Version string // Application version (for footer display)
}
