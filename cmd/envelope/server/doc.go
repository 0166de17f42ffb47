// Package server is a small widget API rendering every response through
// resp.Dispatcher. It exists to exercise the envelope end to end: offset
// and cursor pages, resources with hooks, arrayable stats, validation
// failures, localized business codes and terminal failures.
package server
