package search

import (
	"sync"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
)

// Ticket identifies one fetch. Only the ticket of the latest fetch is applied.
type Ticket struct {
	gen   uint64
	Query Query
}

// Generation returns the generation the ticket was issued for.
func (t Ticket) Generation() uint64 {
	return t.gen
}

// Outcome reports what Apply did with a result.
type Outcome struct {
	// Applied is false when the ticket was superseded and nothing changed.
	Applied bool

	// Refetch is set when the page was clamped and a new fetch has begun.
	Refetch *Ticket
}

// Body is the state of the results area.
type Body int

const (
	BodyLoading Body = iota
	BodyEmpty
	BodyPopulated
)

func (b Body) String() string {
	switch b {
	case BodyLoading:
		return "loading"
	case BodyEmpty:
		return "empty"
	case BodyPopulated:
		return "populated"
	}
	return "unknown"
}

// State is an immutable snapshot of a View for rendering.
type State struct {
	Pending   funeralhomes.Filters
	Submitted funeralhomes.Filters

	Rows      []funeralhomes.Record
	Total     int
	Page      int
	PageCount int
	PageSize  int

	Loading bool
	Error   string

	HasFilters bool
	CanPrev    bool
	CanNext    bool
}

// Body returns which of the three mutually exclusive bodies to render.
func (s State) Body() Body {
	switch {
	case s.Loading:
		return BodyLoading
	case len(s.Rows) == 0:
		return BodyEmpty
	default:
		return BodyPopulated
	}
}

// View is the search page state. It is safe for concurrent use.
type View struct {
	mu sync.Mutex

	pending   funeralhomes.Filters
	submitted funeralhomes.Filters
	page      int

	rows    []funeralhomes.Record
	total   int
	loading bool
	err     string

	gen uint64
}

// NewView returns a view with empty filters on the first page.
func NewView() *View {
	return &View{rows: []funeralhomes.Record{}}
}

// NewViewAt returns a view whose pending and submitted filters are filters,
// positioned on page. Negative pages become 0.
func NewViewAt(filters funeralhomes.Filters, page int) *View {
	if page < 0 {
		page = 0
	}
	return &View{
		pending:   filters,
		submitted: filters,
		page:      page,
		rows:      []funeralhomes.Record{},
	}
}

// SetPending edits one pending filter. It never starts a fetch.
func (v *View) SetPending(field funeralhomes.Field, value string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending.Set(field, value)
}

// Pending returns the form-bound filters.
func (v *View) Pending() funeralhomes.Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// Submitted returns the filters driving requests.
func (v *View) Submitted() funeralhomes.Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitted
}

// Submit commits the pending filters, returns to the first page and begins
// a fetch.
func (v *View) Submit() Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitted = v.pending
	v.page = 0
	return v.beginLocked()
}

// Reset clears both filter sets, returns to the first page and begins a
// fetch.
func (v *View) Reset() Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = funeralhomes.Filters{}
	v.submitted = funeralhomes.Filters{}
	v.page = 0
	return v.beginLocked()
}

// Next moves one page forward when the control is enabled.
func (v *View) Next() (Ticket, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.canNextLocked() {
		return Ticket{}, false
	}
	v.page++
	return v.beginLocked(), true
}

// Prev moves one page back when the control is enabled.
func (v *View) Prev() (Ticket, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.canPrevLocked() {
		return Ticket{}, false
	}
	v.page--
	return v.beginLocked(), true
}

// Begin starts a fetch for the current submitted filters and page.
func (v *View) Begin() Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.beginLocked()
}

func (v *View) beginLocked() Ticket {
	v.gen++
	v.loading = true
	v.err = ""
	return Ticket{
		gen:   v.gen,
		Query: Query{Filters: v.submitted, Page: v.page},
	}
}

// Apply records the result of the fetch identified by t. Results for
// superseded tickets are dropped silently. A failed fetch keeps the previous
// rows and total.
func (v *View) Apply(t Ticket, res Result, err error) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t.gen != v.gen {
		return Outcome{}
	}

	v.loading = false
	if err != nil {
		v.err = ErrorMessage(err)
		return Outcome{Applied: true}
	}

	rows := res.Rows
	if rows == nil {
		rows = []funeralhomes.Record{}
	}
	v.rows = rows
	v.total = res.Total

	if pages := PageCount(v.total); v.page >= pages {
		v.page = pages - 1
		next := v.beginLocked()
		return Outcome{Applied: true, Refetch: &next}
	}
	return Outcome{Applied: true}
}

// Snapshot returns the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{
		Pending:    v.pending,
		Submitted:  v.submitted,
		Rows:       v.rows,
		Total:      v.total,
		Page:       v.page,
		PageCount:  PageCount(v.total),
		PageSize:   PageSize,
		Loading:    v.loading,
		Error:      v.err,
		HasFilters: v.submitted.Active(),
		CanPrev:    v.canPrevLocked(),
		CanNext:    v.canNextLocked(),
	}
}

func (v *View) canPrevLocked() bool {
	return !v.loading && v.page > 0
}

func (v *View) canNextLocked() bool {
	return !v.loading && v.page+1 < PageCount(v.total)
}
