package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/cratedig/internal/filter"
	"github.com/desertthunder/cratedig/internal/services"
	"github.com/desertthunder/cratedig/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a single ad-hoc query against Spotify and prints the results.
// By default only playlists matching the configured keyword set are shown.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	showAll := cmd.Bool("all")

	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	market := cmd.String("market")
	if market == "" {
		market = r.config.Scrape.Market
	}
	limit := int(cmd.Int("limit"))
	if limit == 0 {
		limit = r.config.Scrape.Limit
	}

	if err := r.spotify.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	r.logger.Infof("searching playlists for %q in market %s", query, market)

	playlists, err := r.spotify.SearchPlaylists(ctx, query, services.SearchOptions{Market: market, Limit: limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if !showAll {
		matcher, err := filter.New(r.config.Scrape.Language, r.config.Scrape.Keywords)
		if err != nil {
			return fmt.Errorf("invalid keyword configuration: %w", err)
		}

		kept := playlists[:0]
		for _, p := range playlists {
			if matcher.Match(p.Name) {
				kept = append(kept, p)
			}
		}
		playlists = kept
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	if len(playlists) == 0 {
		r.writePlain("No playlists found\n")
		return nil
	}

	for i, p := range playlists {
		r.writePlain("%d. %s (%d tracks)\n", i+1, p.Name, p.TrackCount)
		r.writePlain("   ID: %s  Owner: %s\n", p.ID, p.Owner)
	}

	return nil
}
