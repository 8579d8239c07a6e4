package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dtnitsch/lexicon-scraper/internal/contexts"
	"github.com/dtnitsch/lexicon-scraper/internal/db"
	"github.com/dtnitsch/lexicon-scraper/internal/export"
	"github.com/dtnitsch/lexicon-scraper/internal/lookup"
	"github.com/dtnitsch/lexicon-scraper/internal/scrape"
	"github.com/dtnitsch/lexicon-scraper/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "lxs",
		Usage: "Build a lexicon of definitions and quotations from dictionary pages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config (default ./lxs.yaml or $LXS_CONFIG)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "json or text",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the SQLite database (default next to the binary)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "Fetch and parse every word of a word list",
				Action: scrape.ScrapeAction,
				Flags: append(scrapeFlags(),
					&cli.StringFlag{
						Name:     "words",
						Aliases:  []string{"w"},
						Usage:    "CSV word list (word[,link])",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "CSV output (default <output-dir>/lexicon.csv)",
					},
					&cli.StringFlag{
						Name:  "json",
						Usage: "Also write a JSON document to this path",
					},
					&cli.StringFlag{
						Name:  "xlsx",
						Usage: "Also write an XLSX workbook to this path",
					},
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Spacing between network requests",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Words fetched between long pauses (0 disables)",
					},
					&cli.DurationFlag{
						Name:  "batch-pause",
						Usage: "Length of the pause between batches",
					},
					&cli.DurationFlag{
						Name:  "max-age",
						Usage: "Reuse stored pages younger than this",
					},
					&cli.BoolFlag{
						Name:  "force-fetch",
						Usage: "Ignore stored pages",
					},
					&cli.BoolFlag{
						Name:  "skip-warmup",
						Usage: "Do not request the site root before the first word",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory for stored pages and run manifests",
					},
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Serve Prometheus metrics on this address during the run",
					},
					&cli.BoolFlag{
						Name:  "no-db",
						Usage: "Do not record words, entries and runs (disables the page cache)",
					},
					&cli.BoolFlag{
						Name:  "results",
						Usage: "Include per-word results in the output",
					},
					&cli.StringFlag{
						Name:  "fields",
						Usage: "Comma-separated result fields to print (implies --results)",
					},
					formatFlag(),
				),
			},
			{
				Name:      "lookup",
				Usage:     "Fetch and parse the page of one word",
				ArgsUsage: "WORD",
				Action:    lookup.LookupAction,
				Flags: append(scrapeFlags(),
					&cli.StringFlag{
						Name:  "link",
						Usage: "Page URL to use instead of one built from the word",
					},
					&cli.BoolFlag{
						Name:  "no-meta",
						Usage: "Skip page metadata extraction",
					},
					fieldsFlag(),
					formatFlag(),
				),
			},
			{
				Name:   "parse",
				Usage:  "Parse a saved page without network access",
				Action: lookup.ParseAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "HTML file to parse, - for stdin",
					},
					&cli.StringFlag{
						Name:  "cached",
						Usage: "Parse the page stored for this word by an earlier scrape",
					},
					&cli.StringFlag{
						Name:  "word",
						Usage: "Headword of the page (default: file name)",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "URL the page was fetched from",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory of stored pages (with --cached)",
					},
					modeFlag(),
					&cli.BoolFlag{
						Name:  "no-meta",
						Usage: "Skip page metadata extraction",
					},
					fieldsFlag(),
					formatFlag(),
				},
			},
			{
				Name:      "contexts",
				Usage:     "Extract sentence windows around lexicon words from a corpus",
				ArgsUsage: "CORPUS.jsonl...",
				Action:    contexts.ContextsAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lexicon",
						Usage: "Lexicon JSON ([{word, definitions}])",
					},
					&cli.StringFlag{
						Name:  "words",
						Usage: "CSV word list, instead of --lexicon",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "CSV output (date,word,text)",
						Value:   contexts.DefaultOutputFile,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Files processed in parallel (default GOMAXPROCS)",
					},
					&cli.BoolFlag{
						Name:  "english-only",
						Usage: "Skip articles not detected as English",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of most frequent words to report",
						Value: 25,
					},
					formatFlag(),
				},
			},
			{
				Name:   "instances",
				Usage:  "Export dated quotations of tagged definitions as CSV",
				Action: export.InstancesAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lexicon",
						Usage: "Lexicon JSON (default: the database)",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "CSV output (word,description,year,text)",
						Value:   "instances.csv",
					},
					outputFormatFlag(),
				},
			},
			{
				Name:   "export",
				Usage:  "Write the stored lexicon as csv, json or xlsx",
				Action: export.ExportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "csv, json or xlsx",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output path (default lexicon.<format>)",
					},
					&cli.StringFlag{
						Name:  "lexicon",
						Usage: "Convert this lexicon JSON instead of reading the database",
					},
					outputFormatFlag(),
				},
			},
			{
				Name:  "db",
				Usage: "Inspect stored runs and words",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "List runs, newest first",
						Action: db.RunsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum runs to list",
								Value: 20,
							},
						},
					},
					{
						Name:      "run",
						Usage:     "Show the results of a run (default latest)",
						ArgsUsage: "[RUN_ID]",
						Action:    db.RunAction,
					},
					{
						Name:   "words",
						Usage:  "List stored words",
						Action: db.WordsAction,
					},
					{
						Name:      "show",
						Usage:     "Show the stored definitions of a word",
						ArgsUsage: "WORD",
						Action:    db.ShowAction,
						Flags:     []cli.Flag{fieldsFlag(), formatFlag()},
					},
					{
						Name:      "raw",
						Usage:     "Print the stored page of a word",
						ArgsUsage: "WORD",
						Action:    db.RawAction,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "output-dir",
								Usage: "Directory of stored pages",
							},
						},
					},
					{
						Name:   "init",
						Usage:  "Create the database schema",
						Action: db.InitAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// scrapeFlags are the network settings shared by scrape and lookup.
func scrapeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Dictionary base URL; the word is appended",
		},
		&cli.StringFlag{
			Name:  "user-agent",
			Usage: "User-Agent header",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
		},
		&cli.BoolFlag{
			Name:  "ignore-robots",
			Usage: "Do not consult robots.txt",
		},
		modeFlag(),
	}
}

func modeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "senses (Noun/Adjective lists) or all",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "yaml or json",
		Value: "yaml",
	}
}

func outputFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "output-format",
		Usage: "Summary format: yaml or json",
		Value: "yaml",
	}
}

func fieldsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "fields",
		Usage: "Comma-separated definition fields to print (pos,tags,labels,description,quotations)",
	}
}
