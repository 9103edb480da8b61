// Package search holds the state behind the funeral home search page and the
// logic that keeps it in step with the API.
//
// # Overview
//
// A View owns four pieces of state:
//
//   - the pending filters, bound to form inputs and edited freely
//   - the submitted filters, which actually drive requests
//   - the zero-based page index
//   - the outcome of the last fetch: rows, total, loading flag, error message
//
// Editing pending filters never triggers a request. Submit copies them into
// the submitted set and returns to the first page; Reset clears both sets.
// Every change of submitted filters or page begins a fetch and hands back a
// Ticket.
//
// # Fetching
//
// A Fetcher resolves a Ticket's Query by issuing the list and count requests
// concurrently and joining them: the fetch succeeds only when both calls do.
//
//	view := search.NewView()
//	fetcher := search.NewFetcher(client)
//
//	view.SetPending(funeralhomes.FieldCity, "Denver")
//	ticket := view.Submit()
//	res, err := fetcher.Fetch(ctx, ticket.Query)
//	view.Apply(ticket, res, err)
//
// # Superseded fetches
//
// Each Ticket carries the generation current when it was issued. Apply
// ignores tickets from older generations, so a slow response for filters the
// user has already replaced never overwrites newer state. In-flight requests
// are not aborted; only their results are dropped.
//
// # Errors
//
// A failed fetch stores a display message (see ErrorMessage) and leaves the
// previous rows and total in place. The message is cleared when the next
// fetch begins.
//
// # Page clamping
//
// When a successful fetch reports a total whose page count no longer covers
// the current page, the page is moved to the last valid one and Apply returns
// a follow-up Ticket for it.
package search
