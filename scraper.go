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


package hustings

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/poiesic/hustings/config"
	"github.com/poiesic/hustings/scrape"
	"github.com/poiesic/hustings/storage"
)

// NewScrapeRunner builds a scrape runner from the scrape section of cfg.
// Status lines go to out. state may be nil to run without a crawl log.
func NewScrapeRunner(cfg *config.Config, state storage.CrawlRepository, out io.Writer, force bool, logger *slog.Logger) (*scrape.Runner, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	sc := cfg.Scrape

	exclude, err := scrape.LoadExcludePatterns(sc.ExcludeFile)
	if err != nil {
		return nil, err
	}

	crawler, err := scrape.NewCrawler(
		scrape.WithHTTPClient(&http.Client{Timeout: sc.Timeout}),
		scrape.WithUserAgent(sc.UserAgent),
		scrape.WithMaxPages(sc.MaxPages),
		scrape.WithRobots(sc.RespectRobots),
		scrape.WithExcludePatterns(exclude),
		scrape.WithThrottle(scrape.NewThrottle(sc.Delay)),
		scrape.WithReadability(sc.Readability),
		scrape.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	opts := []scrape.RunnerOption{
		scrape.WithWorkers(sc.Workers),
		scrape.WithForce(force),
		scrape.WithOutput(out),
		scrape.WithRunnerLogger(logger),
	}
	if state != nil {
		opts = append(opts, scrape.WithState(state))
	}
	return scrape.NewRunner(crawler, sc.OutputDir, opts...)
}
