// Package funeralhomes is the HTTP client for the read-only funeral homes API.
//
// A search is two independent GET requests against the configured base URL:
//
//	GET {base}/funeral-homes?{filters}&limit=&offset=&sort_by=&sort_dir=
//	GET {base}/funeral-homes/count?{filters}
//
// Filter values are trimmed and blank ones are left out of the query string,
// so the server sees "no constraint" instead of an empty constraint.
//
// Every call goes to the network. Requests ask intermediaries not to serve
// cached copies and the client keeps nothing between calls.
//
// Errors come in four shapes:
//
//   - ErrBaseURLNotSet when the client was built without a base URL. Returned
//     before any request is attempted.
//   - *APIError for non-2xx responses, carrying the status code and the body
//     text (or the status reason phrase when the body is empty).
//   - *DecodeError when a 2xx response does not hold the expected JSON.
//   - Transport errors from net/http, wrapped with the request path.
package funeralhomes
