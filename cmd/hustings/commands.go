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
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/poiesic/hustings"
	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/export"
	"github.com/poiesic/hustings/present"
	"github.com/poiesic/hustings/scrape"
	"github.com/poiesic/hustings/search"
	"github.com/urfave/cli/v2"
)

// openIndex builds an index from config and starts the party feed.
func openIndex(c *cli.Context) (*hustings.Index, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	ix, err := hustings.NewIndex(cfg,
		hustings.WithLogger(slog.Default()),
		hustings.WithProgressWriter(c.App.ErrWriter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	ix.Start(c.Context)
	return ix, nil
}

func newRenderer(c *cli.Context, ix *hustings.Index, full bool) *present.Renderer {
	out := c.App.Writer
	return present.NewRenderer(out,
		present.WithStyles(present.StylesFor(out, c.Bool("no-color"))),
		present.WithPalette(ix.Palette()),
		present.WithFullText(full),
	)
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one search term is required")
	}
	mode, err := core.ParseMatchMode(c.String("mode"))
	if err != nil {
		return err
	}

	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	session, err := ix.NewSession(search.WithMode(mode), search.WithMonitor(&search.LogMonitor{Logger: slog.Default()}))
	if err != nil {
		return err
	}
	for _, arg := range c.Args().Slice() {
		session.AddTerms(arg)
	}
	if p := c.String("party"); p != "" {
		session.ToggleParty(p)
	}

	res, err := session.Run(c.Context)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	r := newRenderer(c, ix, c.Bool("full"))
	if err := r.Render(res); err != nil {
		return err
	}

	if path := c.String("export"); path != "" {
		return exportMatches(r, session, path)
	}
	return nil
}

// exportMatches writes the session's match set to path. An empty set is
// reported as a notice rather than an error.
func exportMatches(r *present.Renderer, session *search.Session, path string) error {
	err := export.WriteFile(path, session.Matches())
	if errors.Is(err, export.ErrNoResults) {
		return r.Notice("No results to export.")
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return r.Notice(fmt.Sprintf("Exported %d matches to %s", len(session.Matches()), path))
}

func scrapeCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	sc := &cfg.Scrape
	if c.Bool("fast") {
		sc.FastScrape()
	}
	if c.IsSet("workers") {
		sc.Workers = c.Int("workers")
	}
	if c.IsSet("max-pages") {
		sc.MaxPages = c.Int("max-pages")
	}
	if c.Bool("ignore-robots") {
		sc.RespectRobots = false
	}
	if c.Bool("readability") {
		sc.Readability = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	missing, err := scrape.MissingCandidates(sc.CandidatesCSV, append([]string{sc.OutputDir}, sc.ExistingDirs...))
	if err != nil {
		return err
	}
	if limit := c.Int("limit"); limit > 0 && limit < len(missing) {
		missing = missing[:limit]
	}
	fmt.Fprintf(c.App.Writer, "Missing candidates to scrape: %d\n", len(missing))
	if len(missing) == 0 {
		return nil
	}

	state, err := hustings.OpenCrawlState(sc.StateDir)
	if err != nil {
		return fmt.Errorf("failed to open crawl state: %w", err)
	}
	defer state.Close()

	runner, err := hustings.NewScrapeRunner(cfg, state.Repository(), c.App.Writer, c.Bool("force"), slog.Default())
	if err != nil {
		return err
	}
	summary, err := runner.Run(c.Context, missing)
	fmt.Fprintf(c.App.Writer, "Done: %s\n", summary)
	return err
}

func crawlStatusCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var want core.CrawlStatus
	if s := c.String("status"); s != "" {
		if want, err = core.ParseCrawlStatus(s); err != nil {
			return err
		}
	}

	state, err := hustings.OpenCrawlState(cfg.Scrape.StateDir)
	if err != nil {
		return fmt.Errorf("failed to open crawl state: %w", err)
	}
	defer state.Close()

	repo := state.Repository()
	var records []*core.CrawlRecord
	if n := c.Int("recent"); n > 0 {
		records, err = repo.GetRecentCrawlRecords(c.Context, n)
	} else {
		records, err = repo.GetCrawlRecords(c.Context)
	}
	if err != nil {
		return fmt.Errorf("failed to read crawl state: %w", err)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "STATUS", "PAGES", "UPDATED", "DETAIL")
	shown := 0
	for _, rec := range records {
		if want != 0 && rec.Status != want {
			continue
		}
		detail := rec.Homepage
		if rec.Error != "" {
			detail = rec.Error
		}
		t.Row(rec.PersonID, rec.Name, rec.Status.String(), strconv.FormatInt(rec.Pages, 10),
			rec.UpdatedAt.Local().Format(time.DateTime), truncate(detail, 60))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(c.App.Writer, "No crawl records.")
		return nil
	}
	fmt.Fprintln(c.App.Writer, t.String())
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
