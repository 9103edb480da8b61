// Package log is a small wrapper around the standard library logger used by
// every fhsearch component.
//
// Each component asks for a named logger once and keeps it:
//
//	l := log.ForService("client")
//	l.Infof("fetched %d records", n)
//	l.Debugf("GET %s", url) // printed only when debug is enabled
//
// Lines carry a `[name>]` marker so output from the web server, the API
// handlers and the query client can be told apart with grep.
//
// Debug output can be enabled for the whole process (SetGlobalDebug, wired
// to the --debug flag) or for a single component (EnableDebugFor).
//
// SetOutput redirects every logger, existing and future. The terminal UI uses
// it to keep log lines off the screen it draws, and tests use it to capture
// output in a bytes.Buffer.
package log
