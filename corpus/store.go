package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/hustings/textcache"
)

// Waiter is implemented by party resolvers that populate asynchronously.
type Waiter interface {
	Wait(ctx context.Context) error
}

type loadCall struct {
	done   chan struct{}
	corpus *Corpus
	err    error
}

// Store loads the corpus at most once and shares the result.
//
// Concurrent callers of Load share one in-flight load. The load itself runs
// detached from any caller's cancellation. A load that fails as a whole
// resets the store so a later call tries again.
type Store struct {
	source    LocationSource
	loader    *Loader
	parties   PartyResolver
	partyWait time.Duration
	progress  ProgressFunc
	cacheOpts []textcache.Option
	logger    *slog.Logger

	mu     sync.Mutex
	call   *loadCall
	corpus *Corpus
}

// StoreOption configures a Store.
type StoreOption func(*Store) error

// WithParties sets the resolver used for party totals.
func WithParties(parties PartyResolver) StoreOption {
	return func(s *Store) error {
		s.parties = parties
		return nil
	}
}

// WithPartyWait bounds how long a load waits for the party resolver to
// become ready before computing totals. Zero does not wait.
func WithPartyWait(d time.Duration) StoreOption {
	return func(s *Store) error {
		s.partyWait = d
		return nil
	}
}

// WithProgress sets a callback for loader progress.
func WithProgress(fn ProgressFunc) StoreOption {
	return func(s *Store) error {
		s.progress = fn
		return nil
	}
}

// WithCacheOptions passes options to the text cache built for each load.
func WithCacheOptions(opts ...textcache.Option) StoreOption {
	return func(s *Store) error {
		s.cacheOpts = append(s.cacheOpts, opts...)
		return nil
	}
}

// WithStoreLogger sets a custom logger.
// Default is slog.Default().
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a Store.
func NewStore(source LocationSource, loader *Loader, opts ...StoreOption) (*Store, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if loader == nil {
		return nil, ErrLoaderRequired
	}
	s := &Store{
		source: source,
		loader: loader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load returns the corpus, loading it on first use. If ctx ends before the
// load completes Load returns ctx.Err() while the load continues.
func (s *Store) Load(ctx context.Context) (*Corpus, error) {
	s.mu.Lock()
	if s.corpus != nil {
		c := s.corpus
		s.mu.Unlock()
		return c, nil
	}
	call := s.call
	if call == nil {
		call = &loadCall{done: make(chan struct{})}
		s.call = call
		go s.run(context.WithoutCancel(ctx), call)
	}
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.done:
		return call.corpus, call.err
	}
}

// Loaded reports whether the corpus has finished loading.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.corpus != nil
}

func (s *Store) run(ctx context.Context, call *loadCall) {
	c, err := s.build(ctx)
	call.corpus, call.err = c, err

	s.mu.Lock()
	if err != nil {
		s.logger.Error("corpus load failed", "err", err)
	} else {
		s.corpus = c
	}
	s.call = nil
	s.mu.Unlock()
	close(call.done)
}

func (s *Store) build(ctx context.Context) (*Corpus, error) {
	start := time.Now()
	locations, err := s.source.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus: %w", err)
	}

	cache, err := textcache.New(s.cacheOpts...)
	if err != nil {
		return nil, err
	}

	docs := s.loader.Load(ctx, locations, s.progress)
	for _, d := range docs {
		cache.Add(d)
	}

	if w, ok := s.parties.(Waiter); ok && s.partyWait > 0 {
		wctx, cancel := context.WithTimeout(ctx, s.partyWait)
		if err := w.Wait(wctx); err != nil {
			s.logger.Warn("party directory not ready, totals may be incomplete", "err", err)
		}
		cancel()
	}

	c := NewCorpus(docs, cache, s.parties)
	s.logger.Info("corpus loaded",
		"documents", c.Len(),
		"failed", len(locations)-c.Len(),
		"elapsed", time.Since(start))
	return c, nil
}
