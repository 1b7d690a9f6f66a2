package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/storage"
)

// Summary counts crawl outcomes for one run.
type Summary struct {
	Scraped int
	Empty   int
	Failed  int
	Skipped int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d scraped, %d empty, %d failed, %d skipped", s.Scraped, s.Empty, s.Failed, s.Skipped)
}

// Runner crawls many candidates in parallel and writes their documents.
type Runner struct {
	crawler   *Crawler
	outputDir string
	state     storage.CrawlRepository
	workers   int
	force     bool
	out       io.Writer
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	summary Summary
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithWorkers sets how many candidates are crawled at once.
// Values below 1 are treated as 1.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) error {
		r.workers = max(n, 1)
		return nil
	}
}

// WithState records outcomes in repo and skips candidates already scraped.
func WithState(repo storage.CrawlRepository) RunnerOption {
	return func(r *Runner) error {
		r.state = repo
		return nil
	}
}

// WithForce re-crawls candidates that were already scraped.
func WithForce(force bool) RunnerOption {
	return func(r *Runner) error {
		r.force = force
		return nil
	}
}

// WithOutput sets where status lines are printed.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) error {
		r.out = w
		return nil
	}
}

// WithRunnerLogger sets the logger.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// NewRunner returns a Runner writing documents to outputDir.
func NewRunner(crawler *Crawler, outputDir string, opts ...RunnerOption) (*Runner, error) {
	if crawler == nil {
		return nil, ErrCrawlerRequired
	}
	if outputDir == "" {
		return nil, ErrOutputDirRequired
	}
	r := &Runner{
		crawler:   crawler,
		outputDir: outputDir,
		workers:   1,
		out:       io.Discard,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run crawls candidates and prints one status line per candidate as each
// finishes. Lines are prefixed with the candidate's position, "[i/n]".
func (r *Runner) Run(ctx context.Context, candidates []Candidate) (Summary, error) {
	r.summary = Summary{}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return Summary{}, err
	}
	total := len(candidates)
	if total == 0 {
		return Summary{}, nil
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return Summary{}, fmt.Errorf("create scrape pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			r.report(r.process(ctx, i+1, total, cand))
		}
		if err := pool.Submit(task); err != nil {
			r.logger.Warn("failed to submit scrape task, running inline", "person_id", cand.PersonID, "err", err)
			task()
		}
	}
	wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary, ctx.Err()
}

func (r *Runner) report(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}

func (r *Runner) count(status core.CrawlStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch status {
	case core.CrawlScraped:
		r.summary.Scraped++
	case core.CrawlEmpty:
		r.summary.Empty++
	case core.CrawlFailed:
		r.summary.Failed++
	case core.CrawlSkipped:
		r.summary.Skipped++
	}
}

func (r *Runner) process(ctx context.Context, idx, total int, cand Candidate) string {
	prefix := fmt.Sprintf("[%d/%d]", idx, total)
	rec := &core.CrawlRecord{PersonID: cand.PersonID, Name: cand.Name}

	homepage, ok := NormalizeURL(cand.Homepage)
	if !ok {
		r.count(core.CrawlSkipped)
		rec.Status = core.CrawlSkipped
		rec.Error = "no homepage_url"
		r.record(ctx, rec)
		return fmt.Sprintf("%s Skipping %s %s: no homepage_url", prefix, cand.PersonID, cand.Name)
	}
	rec.Homepage = homepage
	outPath := filepath.Join(r.outputDir, SafeFilename(cand.PersonID, cand.Name))
	rec.Output = outPath

	if !r.force {
		if _, err := os.Stat(outPath); err == nil {
			r.count(core.CrawlSkipped)
			return fmt.Sprintf("%s Skipping %s %s: already scraped", prefix, cand.PersonID, cand.Name)
		}
		if r.scrapedBefore(ctx, cand.PersonID) {
			r.count(core.CrawlSkipped)
			return fmt.Sprintf("%s Skipping %s %s: recorded as scraped", prefix, cand.PersonID, cand.Name)
		}
	}

	msg := fmt.Sprintf("%s Scraping %s %s -> %s", prefix, cand.PersonID, cand.Name, homepage)
	site, err := r.crawler.CrawlSite(ctx, homepage)
	if err != nil {
		r.count(core.CrawlFailed)
		rec.Status = core.CrawlFailed
		rec.Error = err.Error()
		r.record(ctx, rec)
		return fmt.Sprintf("%s\n  Failed: %v", msg, err)
	}
	rec.Pages = int64(site.Len())

	if site.Len() == 0 {
		r.count(core.CrawlEmpty)
		rec.Status = core.CrawlEmpty
		r.record(ctx, rec)
		return fmt.Sprintf("%s\n  No pages scraped for %s %s", msg, cand.PersonID, cand.Name)
	}

	if err := site.WriteFile(outPath); err != nil {
		r.count(core.CrawlFailed)
		rec.Status = core.CrawlFailed
		rec.Error = err.Error()
		r.record(ctx, rec)
		return fmt.Sprintf("%s\n  Failed to write %s: %v", msg, outPath, err)
	}

	r.count(core.CrawlScraped)
	rec.Status = core.CrawlScraped
	r.record(ctx, rec)
	return msg
}

func (r *Runner) scrapedBefore(ctx context.Context, personID string) bool {
	if r.state == nil {
		return false
	}
	rec, err := r.state.GetCrawlRecord(ctx, personID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("failed to read crawl state", "person_id", personID, "err", err)
		}
		return false
	}
	return rec.Status == core.CrawlScraped
}

func (r *Runner) record(ctx context.Context, rec *core.CrawlRecord) {
	if r.state == nil {
		return
	}
	rec.UpdatedAt = r.now()
	if err := r.state.PutCrawlRecords(context.WithoutCancel(ctx), rec); err != nil {
		r.logger.Warn("failed to record crawl state", "person_id", rec.PersonID, "err", err)
	}
}
