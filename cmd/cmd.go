// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// scrapeCommand runs the full query-search-filter-persist pipeline
func scrapeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Search Spotify for each query and save matching playlists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "queries",
				Aliases: []string{"q"},
				Usage:   "Path to the query workbook",
			},
			&cli.StringFlag{
				Name:  "column",
				Usage: "Header of the query column",
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"o"},
				Usage:   "Path to the results workbook",
			},
			&cli.StringFlag{
				Name:  "market",
				Usage: "Spotify market code",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum results per query",
			},
			&cli.BoolFlag{
				Name:  "dedupe",
				Usage: "Collapse rows sharing a playlist and query, keeping the latest",
			},
			&cli.BoolFlag{
				Name:  "no-record",
				Usage: "Skip recording run history to the database",
			},
		},
		Action: r.Scrape,
	}
}

// searchCommand runs a single ad-hoc query
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search Spotify playlists for a single query",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "market",
				Usage: "Spotify market code",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum results to return",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Show every result instead of keyword matches only",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// runsCommand inspects recorded run history
func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect scrape run history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded runs, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by run status",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RunsList,
			},
			{
				Name:  "show",
				Usage: "Show a run and its matched playlists",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RunsShow,
			},
		},
	}
}

// exportCommand converts the results workbook to other formats
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export scraped results to CSV, Markdown, text, or JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Path to the results workbook",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (csv, markdown, text, json)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to stdout)",
			},
		},
		Action: r.Export,
	}
}

// browseCommand launches the results TUI
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse scraped playlists in an interactive TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Path to the results workbook",
			},
		},
		Action: r.Browse,
	}
}

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config file from the template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
