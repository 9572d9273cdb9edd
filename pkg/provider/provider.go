// Package provider defines the remote catalog search boundary. The
// dispatch core only ever sees this interface; concrete providers live in
// subpackages.
package provider

import "context"

// Video is one search result. Empty string fields mean the provider did
// not report that piece of metadata.
type Video struct {
	ID      string
	Title   string
	Channel string
	Album   string
	Artist  string
	Genre   string
}

// Searcher resolves a free-text query to a list of videos. A single
// resolved value or an error; no streaming or partial results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Video, error)
}
