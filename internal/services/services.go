// package services defines interface Searcher for querying music catalog HTTP APIs
//
// Spotify is the only implementation; the interface exists so the scrape
// engine can be driven by a fake in tests.
package services

import (
	"context"

	"github.com/desertthunder/cratedig/internal/models"
)

// Searcher defines the read-only search surface of a music catalog service.
type Searcher interface {
	// Authenticate acquires (or refreshes) an access token.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context) error

	// SearchPlaylists issues one search request for playlist-type results.
	SearchPlaylists(ctx context.Context, query string, opts SearchOptions) ([]models.Playlist, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// SearchOptions narrow a playlist search to a market and page size.
type SearchOptions struct {
	Market string // ISO 3166-1 alpha-2 country code
	Limit  int    // Page size, clamped to the service maximum
}
