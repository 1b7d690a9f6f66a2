// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/hustings/config"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hustings",
		Usage: "Search what election candidates say on their own websites",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (default: ./" + config.DefaultFile + " when present)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the corpus once and print the results",
				ArgsUsage: "TERM[,TERM...] ...",
				Action:    searchCommand,
				Flags: append(corpusFlags(),
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "How terms combine within a section (all, any)",
						Value:   "all",
					},
					&cli.StringFlag{
						Name:    "party",
						Aliases: []string{"p"},
						Usage:   "Only show candidates from this party",
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Show whole sections instead of snippets",
					},
					&cli.StringFlag{
						Name:    "export",
						Aliases: []string{"o"},
						Usage:   "Write every match to this CSV file",
					},
				),
			},
			{
				Name:   "shell",
				Usage:  "Interactive search session",
				Action: shellCommand,
				Flags: append(corpusFlags(),
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Initial match mode (all, any)",
						Value:   "all",
					},
				),
			},
			{
				Name:   "scrape",
				Usage:  "Crawl websites of candidates that have no document yet",
				Action: scrapeCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "fast",
						Usage: "Preset for faster runs: 15 pages, 300ms delay, 6 workers",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Limit number of candidates to scrape (0 for no limit)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-crawl candidates that were already scraped",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of candidates to scrape in parallel",
					},
					&cli.IntFlag{
						Name:  "max-pages",
						Usage: "Maximum pages to keep per candidate",
					},
					&cli.BoolFlag{
						Name:  "ignore-robots",
						Usage: "Do not consult robots.txt",
					},
					&cli.BoolFlag{
						Name:  "readability",
						Usage: "Keep only each page's main content",
					},
				},
			},
			{
				Name:   "crawl-status",
				Usage:  "List recorded crawl outcomes",
				Action: crawlStatusCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "recent",
						Usage: "Show only the N most recently updated records (0 for all, by person ID)",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only show records with this status (scraped, empty, failed, skipped)",
					},
				},
			},
		},
	}
}

// corpusFlags override where the corpus and party feed are read from.
func corpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Directory of candidate JSON documents",
		},
		&cli.StringFlag{
			Name:  "manifest",
			Usage: "Manifest listing document locations (path or URL)",
		},
		&cli.StringFlag{
			Name:  "party-feed",
			Usage: "CSV with person_id and party_name columns (path or URL)",
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// loadConfig reads the config file and applies command flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("dir") {
		cfg.Corpus.Dir = c.String("dir")
	}
	if c.IsSet("manifest") {
		cfg.Corpus.Manifest = c.String("manifest")
	}
	if c.IsSet("party-feed") {
		cfg.Party.Feed = c.String("party-feed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
