// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// trackFlags describe the track being searched for.
func trackFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "artist",
			Aliases:  []string{"a"},
			Usage:    "Artist name, repeat for every credited artist",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "track",
			Aliases:  []string{"t"},
			Usage:    "Track title",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "duration",
			Aliases:  []string{"d"},
			Usage:    "Track length as M:SS or milliseconds",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "Backend to search: music, youtube or all",
			Value:   "all",
		},
	}
}

// searchCommand handles single track and raw shelf searches
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search for the YouTube source of a track",
		Commands: []*cli.Command{
			{
				Name:  "track",
				Usage: "Rank candidates for a track across backends",
				Flags: append(trackFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json or csv",
						Value:   "text",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of candidates to print, 0 for all",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the candidates to a file instead of stdout",
					},
				),
				Action: r.SearchTrack,
			},
			{
				Name:  "shelves",
				Usage: "Print the raw YouTube Music result shelves for a query",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "more",
						Usage: "Also fetch the next page of this shelf",
					},
					&cli.StringFlag{
						Name:  "expand",
						Usage: "Also fetch the full listing behind this shelf",
					},
				},
				Action: r.SearchShelves,
			},
		},
	}
}

// feedsCommand resolves the downloadable feeds of a video
func feedsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "feeds",
		Usage: "List the downloadable formats of a video",
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
				Value: true,
			},
		},
		Action: r.Feeds,
	}
}

// bulkCommand resolves every track of a CSV file
func bulkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bulk",
		Usage: "Resolve every track of a CSV file (artists;...,track,duration)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Usage:   "Backend to search: music, youtube or all",
				Value:   "all",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Tracks resolved concurrently (max 10)",
				Value:   4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Tracks started per second",
				Value: 2,
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"o"},
				Usage:   "Write a report of every track to this file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format: json, csv or text",
				Value:   "json",
			},
		},
		Action: r.Bulk,
	}
}

// pickCommand returns the interactive candidate picker.
func pickCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "pick",
		Aliases: []string{"tui", "ui"},
		Usage:   "Search for a track and pick a candidate interactively",
		Flags:   trackFlags(),
		Action:  r.Pick,
	}
}

// keyCommand manages the cached YouTube Music api key
func keyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "Show, refresh or clear the cached YouTube Music api key",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Scrape a new key even if one is cached",
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Remove the cached key",
			},
			&cli.BoolFlag{
				Name:  "show",
				Usage: "Print the whole key instead of a masked one",
			},
		},
		Action: r.Key,
	}
}

// setupCommand writes the config file and prepares the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the key cache database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
		},
		Action: r.Setup,
	}
}
