// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tidalfest/internal/poster"
)

// authCommand handles authentication, which is delegated to the backend.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Connect your TIDAL account",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Open the backend's TIDAL login page in a browser",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Only print the login URL",
					},
				},
				Action: r.AuthLogin,
			},
		},
	}
}

// festivalCommand handles lineup fetch, render and export.
func festivalCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "festival",
		Aliases: []string{"fest"},
		Usage:   "Festival lineup operations",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Fetch a lineup and print it",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: poster, text, markdown, csv or json",
						Value:   "poster",
					},
					themeFlag(),
					langFlag(),
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Do not record the lineup in the local database",
					},
				},
				Action: r.FestivalShow,
			},
			{
				Name:      "export",
				Usage:     "Render the lineup poster to a PNG file",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					themeFlag(),
					langFlag(),
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Directory for the PNG (defaults to poster.export_dir)",
					},
					&cli.IntFlag{
						Name:  "scale",
						Usage: "Pixel ratio (defaults to poster.pixel_ratio)",
					},
					&cli.BoolFlag{
						Name:  "markdown",
						Usage: "Also write a README.md lineup next to the poster",
					},
				},
				Action: r.FestivalExport,
			},
			{
				Name:  "history",
				Usage: "List cached lineups and exported posters",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of rows per table",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FestivalHistory,
			},
		},
	}
}

func themeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "theme",
		Aliases: []string{"t"},
		Usage:   "Poster theme (see 'tidalfest themes')",
	}
}

func langFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "lang",
		Usage: "Language for day headings and dates (es, en)",
	}
}

// themesCommand lists the poster themes.
func themesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "themes",
		Usage:  "List poster themes (default " + poster.DefaultTheme + ")",
		Action: r.Themes,
	}
}

// langCommand shows or sets the persisted display language.
func langCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "lang",
		Usage:     "Show or set the display language",
		Arguments: []cli.Argument{&cli.StringArg{Name: "code"}},
		Action:    r.Lang,
	}
}

// serveCommand runs the HTTP poster server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve lineups and posters over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (defaults to server.port)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file with the current settings",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Aliases:   []string{"interactive", "ui"},
		Usage:     "Launch the interactive festival TUI",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.TUI,
	}
}
