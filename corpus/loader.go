package corpus

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/hustings/core"
)

// Fetcher opens a corpus resource once.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (io.ReadCloser, error)
}

// ProgressFunc receives (completed, total) after each item finishes.
// Calls are serialized and completed grows by exactly one per call.
type ProgressFunc func(completed, total int)

// Loader fetches and decodes corpus documents with a bounded set of workers.
type Loader struct {
	fetcher     Fetcher
	concurrency int
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithConcurrency sets the number of workers.
// Values below 1 are treated as 1. Default is runtime.NumCPU().
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) error {
		if n < 1 {
			n = 1
		}
		l.concurrency = n
		return nil
	}
}

// WithLoaderLogger sets a custom logger.
// Default is slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a Loader.
func NewLoader(fetcher Fetcher, opts ...LoaderOption) (*Loader, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	l := &Loader{
		fetcher:     fetcher,
		concurrency: runtime.NumCPU(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Concurrency returns the configured worker count.
func (l *Loader) Concurrency() int {
	return l.concurrency
}

// Load fetches every location and returns the documents that decoded
// successfully, in input order. Each location is claimed by exactly one
// worker from a shared cursor. Failures are logged and dropped.
// progress may be nil.
func (l *Loader) Load(ctx context.Context, locations []string, progress ProgressFunc) []*core.Document {
	total := len(locations)
	if total == 0 {
		return nil
	}

	slots := make([]*core.Document, total)
	var cursor atomic.Int64
	var progressMu sync.Mutex
	completed := 0

	finish := func() {
		progressMu.Lock()
		defer progressMu.Unlock()
		completed++
		if progress != nil {
			progress(completed, total)
		}
	}

	worker := func() {
		for {
			if ctx.Err() != nil {
				return
			}
			i := int(cursor.Add(1) - 1)
			if i >= total {
				return
			}
			doc, err := l.loadOne(ctx, locations[i])
			if err != nil {
				l.logger.Warn("failed to load document", "location", locations[i], "err", err)
			} else {
				slots[i] = doc
			}
			finish()
		}
	}

	pool, err := ants.NewPool(l.concurrency)
	if err != nil {
		l.logger.Error("failed to create loader pool, loading inline", "err", err)
		worker()
		return compact(slots)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	started := 0
	for range l.concurrency {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			worker()
		}); err != nil {
			wg.Done()
			l.logger.Warn("failed to submit loader worker", "err", err)
			continue
		}
		started++
	}
	if started == 0 {
		worker()
	}
	wg.Wait()

	return compact(slots)
}

func (l *Loader) loadOne(ctx context.Context, location string) (*core.Document, error) {
	if err := core.ValidateLocation(location); err != nil {
		return nil, err
	}
	rc, err := l.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return DecodeDocument(location, rc)
}

func compact(slots []*core.Document) []*core.Document {
	docs := make([]*core.Document, 0, len(slots))
	for _, d := range slots {
		if d != nil {
			docs = append(docs, d)
		}
	}
	return docs
}
