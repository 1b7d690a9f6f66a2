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
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/poiesic/hustings/color"
	"github.com/poiesic/hustings/config"
	"github.com/poiesic/hustings/corpus"
	"github.com/poiesic/hustings/fetch"
	"github.com/poiesic/hustings/party"
	"github.com/poiesic/hustings/search"
)

// progressInterval is how many documents pass between progress lines.
const progressInterval = 25

// Index wires configuration into a party directory, a memoized corpus store
// and the search sessions that read them.
type Index struct {
	cfg     *config.Config
	opener  *fetch.Opener
	parties *party.Directory
	palette *color.Palette
	store   *corpus.Store
	logger  *slog.Logger

	progress io.Writer
	start    sync.Once
}

// IndexOption configures an Index.
type IndexOption func(*Index) error

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) IndexOption {
	return func(ix *Index) error {
		if logger != nil {
			ix.logger = logger
		}
		return nil
	}
}

// WithProgressWriter prints corpus loading progress to w.
func WithProgressWriter(w io.Writer) IndexOption {
	return func(ix *Index) error {
		ix.progress = w
		return nil
	}
}

// NewIndex builds an Index from cfg. Nothing is fetched until Start or the
// first search.
func NewIndex(cfg *config.Config, opts ...IndexOption) (*Index, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	ix := &Index{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	opener, err := fetch.NewOpener(
		fetch.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		fetch.WithUserAgent(cfg.HTTP.UserAgent),
		fetch.WithRetry(max(cfg.HTTP.MaxRetries, 1), cfg.HTTP.RetryDelay),
		fetch.WithLogger(ix.logger),
	)
	if err != nil {
		return nil, err
	}
	ix.opener = opener

	ix.parties, err = party.NewDirectory(party.WithLogger(ix.logger))
	if err != nil {
		return nil, err
	}
	ix.palette = color.NewPalette(cfg.Party.Colors, ix.logger)

	loader, err := corpus.NewLoader(opener,
		corpus.WithConcurrency(cfg.Corpus.Concurrency),
		corpus.WithLoaderLogger(ix.logger),
	)
	if err != nil {
		return nil, err
	}

	source := &corpus.Source{
		List:     cfg.Corpus.Locations,
		Manifest: cfg.Corpus.Manifest,
		Dir:      cfg.Corpus.Dir,
		Opener:   opener,
		Logger:   ix.logger,
	}
	storeOpts := []corpus.StoreOption{
		corpus.WithParties(ix.parties),
		corpus.WithPartyWait(cfg.Party.Wait),
		corpus.WithStoreLogger(ix.logger),
	}
	if ix.progress != nil {
		tracker := corpus.NewProgressTracker(ix.progress, progressInterval)
		storeOpts = append(storeOpts, corpus.WithProgress(tracker.Observe))
	}
	ix.store, err = corpus.NewStore(source, loader, storeOpts...)
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// Start begins loading the party feed in the background. Without a feed the
// directory is marked ready at once. Only the first call has any effect; ctx
// bounds the background load.
func (ix *Index) Start(ctx context.Context) {
	ix.start.Do(func() {
		if feed := ix.cfg.Party.Feed; feed != "" {
			ix.parties.LoadAsync(ctx, ix.opener, feed)
			return
		}
		ix.logger.Debug("no party feed configured")
		ix.parties.MarkReady()
	})
}

// NewSession returns a search session over the shared corpus.
func (ix *Index) NewSession(opts ...search.Option) (*search.Session, error) {
	base := []search.Option{
		search.WithProfileBase(ix.cfg.ProfileBaseURL),
		search.WithLogger(ix.logger),
	}
	return search.NewSession(ix.store, ix.parties, append(base, opts...)...)
}

// Load returns the corpus, loading it on first use.
func (ix *Index) Load(ctx context.Context) (*corpus.Corpus, error) {
	return ix.store.Load(ctx)
}

// Loaded reports whether the corpus has been loaded.
func (ix *Index) Loaded() bool {
	return ix.store.Loaded()
}

// Parties returns the party directory.
func (ix *Index) Parties() *party.Directory {
	return ix.parties
}

// Palette returns the party color palette.
func (ix *Index) Palette() *color.Palette {
	return ix.palette
}

// Config returns the configuration the index was built from.
func (ix *Index) Config() *config.Config {
	return ix.cfg
}
