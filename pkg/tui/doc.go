// Package tui is the interactive terminal search page. It drives a
// search.View from bubbletea: fetches run as commands and their results are
// applied in Update, so the view has a single writer.
package tui
